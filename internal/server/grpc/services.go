package grpc

import (
	"context"

	"github.com/dmitrijs2005/memoria/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Stats supplies the admin dashboard counters.
type Stats interface {
	Stats(ctx context.Context) (*models.SystemStats, error)
}

const (
	AccountMeMethod     = "/memoria.account.AccountService/Me"
	AdminGetStatsMethod = "/memoria.admin.AdminService/GetStats"
)

// The descriptors below are written by hand: requests and replies use the
// protobuf well-known Empty and Struct messages, so no generated code is
// needed.

type accountServer interface {
	Me(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

type adminServer interface {
	GetStats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

var accountServiceDesc = grpc.ServiceDesc{
	ServiceName: "memoria.account.AccountService",
	HandlerType: (*accountServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Me", Handler: accountMeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "memoria/account.proto",
}

var adminServiceDesc = grpc.ServiceDesc{
	ServiceName: "memoria.admin.AdminService",
	HandlerType: (*adminServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStats", Handler: adminGetStatsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "memoria/admin.proto",
}

func accountMeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(accountServer).Me(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AccountMeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(accountServer).Me(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func adminGetStatsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(adminServer).GetStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AdminGetStatsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(adminServer).GetStats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

type accountService struct{}

// Me returns the authenticated caller.
func (accountService) Me(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	u, ok := PrincipalFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "could not validate credentials")
	}
	return structpb.NewStruct(map[string]any{
		"id":       u.ID,
		"email":    u.Email,
		"name":     u.Name,
		"is_admin": u.IsAdmin,
	})
}

type adminService struct {
	stats  Stats
	server *GRPCServer
}

func (a adminService) GetStats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st, err := a.stats.Stats(ctx)
	if err != nil {
		a.server.logger.Error(ctx, "grpc stats", "error", err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}
	return structpb.NewStruct(map[string]any{
		"total_users":          st.TotalUsers,
		"total_albums":         st.TotalAlbums,
		"total_photos":         st.TotalPhotos,
		"total_messages":       st.TotalMessages,
		"total_tasks":          st.TotalTasks,
		"total_events":         st.TotalEvents,
		"completed_tasks":      st.CompletedTasks,
		"task_completion_rate": st.TaskCompletionRate(),
	})
}
