// Package grpc runs the gRPC listener: the standard health service, the
// account and admin services, and an interceptor that applies the same
// access checks as the HTTP API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/memoria/internal/logging"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Guard is the access check applied to every non-health method.
type Guard interface {
	RequireAuthenticated(ctx context.Context, token string) (*models.User, error)
	RequireActive(user *models.User) (*models.User, error)
	RequireAdmin(user *models.User) (*models.User, error)
}

type GRPCServer struct {
	address string
	guard   Guard
	stats   Stats
	logger  logging.Logger

	// methods under these prefixes additionally require the admin role
	adminPrefixes []string

	health *health.Server
}

func NewGRPCServer(a string, l logging.Logger, guard Guard, stats Stats, adminPrefixes ...string) *GRPCServer {
	return &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		guard:         guard,
		stats:         stats,
		adminPrefixes: adminPrefixes,
		health:        health.NewServer(),
	}
}

// Register attaches the services served by this listener.
func (s *GRPCServer) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, s.health)
	srv.RegisterService(&accountServiceDesc, accountService{})
	srv.RegisterService(&adminServiceDesc, adminService{stats: s.stats, server: s})
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	s.Register(srv)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gPRC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
