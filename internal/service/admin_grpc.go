package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Регистрация сервиса без кодогенерации; запросы и ответы используют well-known типы protobuf.

const AdminServiceName = "salon.admin.v1.AdminService"

const (
	AdminService_RunDigest_FullMethodName    = "/" + AdminServiceName + "/RunDigest"
	AdminService_GetDashboard_FullMethodName = "/" + AdminServiceName + "/GetDashboard"
)

type AdminServiceServer interface {
	RunDigest(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	if srv == nil {
		panic(errNilServer)
	}
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

func _AdminService_RunDigest_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdminServiceServer).RunDigest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AdminService_RunDigest_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AdminServiceServer).RunDigest(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _AdminService_GetDashboard_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdminServiceServer).GetDashboard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AdminService_GetDashboard_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AdminServiceServer).GetDashboard(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AdminServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RunDigest", Handler: _AdminService_RunDigest_Handler},
		{MethodName: "GetDashboard", Handler: _AdminService_GetDashboard_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "salon/admin/v1/admin.proto",
}

// AdminServiceClient: тонкий клиент для CLI и тестов.
type AdminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) *AdminServiceClient {
	return &AdminServiceClient{cc: cc}
}

func (c *AdminServiceClient) RunDigest(ctx context.Context, kind string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AdminService_RunDigest_FullMethodName, wrapperspb.String(kind), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AdminServiceClient) GetDashboard(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AdminService_GetDashboard_FullMethodName, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
