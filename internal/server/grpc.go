package server

import (
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/visiting-cards/internal/cards"
)

// NewGRPCServer builds a server exposing CardsService, health and reflection.
// The health server reports SERVING for "" and the cards service.
func NewGRPCServer(svc *cards.Service, logger *slog.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(UnaryLoggingInterceptor(logger))}, opts...)
	grpcServer := grpc.NewServer(opts...)

	RegisterCardsServiceServer(grpcServer, NewCardsServer(svc, logger))

	// Register gRPC health service
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(CardsServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	// Reflection for grpcurl
	reflection.Register(grpcServer)
	return grpcServer, healthServer
}
