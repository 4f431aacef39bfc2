package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/utils"
)

// CardsClient calls cards.v1.CardsService.
type CardsClient struct {
	cc grpc.ClientConnInterface
}

func NewCardsClient(cc grpc.ClientConnInterface) *CardsClient {
	return &CardsClient{cc: cc}
}

func (c *CardsClient) Extract(ctx context.Context, text string, opts ...grpc.CallOption) (entity.ContactRecord, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("Extract"), wrapperspb.String(text), out, opts...); err != nil {
		return entity.ContactRecord{}, err
	}
	return utils.FromPBRecord(out), nil
}

// Scan returns the raw result struct: record, card_id, saved, deduplicated, text, confidence.
func (c *CardsClient) Scan(ctx context.Context, path string, preview, force bool, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"path":    structpb.NewStringValue(path),
		"preview": structpb.NewBoolValue(preview),
		"force":   structpb.NewBoolValue(force),
	}}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("Scan"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CardsClient) Save(ctx context.Context, rec entity.ContactRecord, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("Save"), utils.ToPBRecord(rec), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CardsClient) List(ctx context.Context, opts ...grpc.CallOption) ([]*structpb.Struct, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, fullMethod("List"), &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	cards := make([]*structpb.Struct, 0, len(out.GetValues()))
	for _, v := range out.GetValues() {
		cards = append(cards, v.GetStructValue())
	}
	return cards, nil
}

func (c *CardsClient) DeleteByName(ctx context.Context, name string, opts ...grpc.CallOption) (int64, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, fullMethod("DeleteByName"), wrapperspb.String(name), out, opts...); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *CardsClient) Export(ctx context.Context, opts ...grpc.CallOption) ([]byte, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, fullMethod("Export"), &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out.GetValue(), nil
}
