package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const principalKey ctxKey = "principal"

const (
	authorizationMetadata = "authorization"
	healthServicePrefix   = "/grpc.health.v1.Health/"
)

// PrincipalFromContext returns the user stored by the interceptor.
func PrincipalFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(principalKey).(*models.User)
	return u, ok
}

func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(authorizationMetadata)
	if len(values) == 0 {
		return ""
	}
	scheme, token, ok := strings.Cut(values[0], " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

func (s *GRPCServer) requiresAdmin(method string) bool {
	for _, p := range s.adminPrefixes {
		if strings.HasPrefix(method, p) {
			return true
		}
	}
	return false
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "could not validate credentials")
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if strings.HasPrefix(info.FullMethod, healthServicePrefix) {
		return handler(ctx, req)
	}

	user, err := s.guard.RequireAuthenticated(ctx, tokenFromMetadata(ctx))
	if err == nil {
		user, err = s.guard.RequireActive(user)
	}
	if err == nil && s.requiresAdmin(info.FullMethod) {
		user, err = s.guard.RequireAdmin(user)
	}
	if err != nil {
		if !errors.Is(err, common.ErrUnauthenticated) && !errors.Is(err, common.ErrForbidden) {
			s.logger.Error(ctx, "grpc auth", "method", info.FullMethod, "error", err.Error())
		}
		return nil, toStatus(err)
	}

	ctx = context.WithValue(ctx, principalKey, user)

	return handler(ctx, req)
}
