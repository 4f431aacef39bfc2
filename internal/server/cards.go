package server

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/visiting-cards/internal/cards"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/pipeline"
	"github.com/joseph-ayodele/visiting-cards/internal/utils"
)

type CardsServer struct {
	svc    *cards.Service
	logger *slog.Logger
}

var _ CardsServiceServer = (*CardsServer)(nil)

func NewCardsServer(svc *cards.Service, logger *slog.Logger) *CardsServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardsServer{svc: svc, logger: logger}
}

func (s *CardsServer) Extract(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	return utils.ToPBRecord(s.svc.Extract(req.GetValue())), nil
}

func (s *CardsServer) Scan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	path := strings.TrimSpace(utils.StringField(req, "path"))
	if path == "" {
		return nil, common.InvalidArgumentError("path is required")
	}
	res, err := s.svc.Scan(ctx, path, pipeline.Options{
		Preview: utils.BoolField(req, "preview"),
		Force:   utils.BoolField(req, "force"),
	})
	if err != nil {
		return nil, err
	}
	return utils.ToPBScanResult(res), nil
}

func (s *CardsServer) Save(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	card, err := s.svc.Save(ctx, utils.FromPBRecord(req))
	if err != nil {
		return nil, err
	}
	return utils.ToPBCard(card), nil
}

func (s *CardsServer) List(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	list, err := s.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return utils.ToPBCards(list), nil
}

func (s *CardsServer) DeleteByName(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.Int64Value, error) {
	n, err := s.svc.DeleteByName(ctx, req.GetValue())
	if err != nil {
		return nil, err
	}
	return wrapperspb.Int64(n), nil
}

func (s *CardsServer) Export(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	b, err := s.svc.Export(ctx)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bytes(b), nil
}
