package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service and method names from wikitext.proto
const (
	WikiTextService_ServiceName                  = "wikitext.v1.WikiTextService"
	WikiTextService_RandomArticle_FullMethodName = "/wikitext.v1.WikiTextService/RandomArticle"
	WikiTextService_HealthCheck_FullMethodName   = "/wikitext.v1.WikiTextService/HealthCheck"
)

// WikiTextServiceClient is the client API for WikiTextService
type WikiTextServiceClient interface {
	RandomArticle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	HealthCheck(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type wikiTextServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWikiTextServiceClient(cc grpc.ClientConnInterface) WikiTextServiceClient {
	return &wikiTextServiceClient{cc}
}

func (c *wikiTextServiceClient) RandomArticle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, WikiTextService_RandomArticle_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *wikiTextServiceClient) HealthCheck(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, WikiTextService_HealthCheck_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// WikiTextServiceServer is the server API for WikiTextService. Implementations
// must embed UnimplementedWikiTextServiceServer.
type WikiTextServiceServer interface {
	RandomArticle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	HealthCheck(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedWikiTextServiceServer()
}

// UnimplementedWikiTextServiceServer answers every method with codes.Unimplemented
type UnimplementedWikiTextServiceServer struct{}

func (UnimplementedWikiTextServiceServer) RandomArticle(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RandomArticle not implemented")
}

func (UnimplementedWikiTextServiceServer) HealthCheck(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method HealthCheck not implemented")
}

func (UnimplementedWikiTextServiceServer) mustEmbedUnimplementedWikiTextServiceServer() {}

func RegisterWikiTextServiceServer(s grpc.ServiceRegistrar, srv WikiTextServiceServer) {
	s.RegisterService(&WikiTextService_ServiceDesc, srv)
}

func _WikiTextService_RandomArticle_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WikiTextServiceServer).RandomArticle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: WikiTextService_RandomArticle_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WikiTextServiceServer).RandomArticle(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _WikiTextService_HealthCheck_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WikiTextServiceServer).HealthCheck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: WikiTextService_HealthCheck_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WikiTextServiceServer).HealthCheck(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// WikiTextService_ServiceDesc is the grpc.ServiceDesc for WikiTextService
var WikiTextService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: WikiTextService_ServiceName,
	HandlerType: (*WikiTextServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RandomArticle",
			Handler:    _WikiTextService_RandomArticle_Handler,
		},
		{
			MethodName: "HealthCheck",
			Handler:    _WikiTextService_HealthCheck_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proto/wikitext.proto",
}
