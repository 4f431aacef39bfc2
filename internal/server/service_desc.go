package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// CardsServiceName is the fully qualified gRPC service name.
const CardsServiceName = "cards.v1.CardsService"

// CardsServiceServer is the server API for cards.v1.CardsService. Messages are
// protobuf well-known types so no generated code is needed on either side.
type CardsServiceServer interface {
	// Extract runs field extraction on OCR text; nothing is stored.
	Extract(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// Scan processes a card file on the server host: {path, preview, force}.
	Scan(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Save stores a manually entered record.
	Save(context.Context, *structpb.Struct) (*structpb.Struct, error)
	List(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	// DeleteByName returns the number of cards removed.
	DeleteByName(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int64Value, error)
	// Export returns an XLSX workbook.
	Export(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
}

func fullMethod(name string) string {
	return "/" + CardsServiceName + "/" + name
}

func unaryHandler[Req, Resp any](method string, call func(CardsServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CardsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(CardsServiceServer), ctx, req.(*Req))
		})
	}
}

// CardsServiceDesc is the grpc.ServiceDesc for cards.v1.CardsService.
var CardsServiceDesc = grpc.ServiceDesc{
	ServiceName: CardsServiceName,
	HandlerType: (*CardsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Extract", Handler: unaryHandler("Extract", CardsServiceServer.Extract)},
		{MethodName: "Scan", Handler: unaryHandler("Scan", CardsServiceServer.Scan)},
		{MethodName: "Save", Handler: unaryHandler("Save", CardsServiceServer.Save)},
		{MethodName: "List", Handler: unaryHandler("List", CardsServiceServer.List)},
		{MethodName: "DeleteByName", Handler: unaryHandler("DeleteByName", CardsServiceServer.DeleteByName)},
		{MethodName: "Export", Handler: unaryHandler("Export", CardsServiceServer.Export)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cards/v1/cards.proto",
}

func RegisterCardsServiceServer(s grpc.ServiceRegistrar, srv CardsServiceServer) {
	s.RegisterService(&CardsServiceDesc, srv)
}
