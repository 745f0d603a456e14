package notifyv1

import (
	"context"

	"google.golang.org/grpc"
)

// FrontendNotifyServiceServer is the server API the frontend package's
// Server implements, matching the RPC set declared in
// proto/notify/v1/notify.proto's FrontendNotifyService.
type FrontendNotifyServiceServer interface {
	CreateConnection(*CreateConnectionRequest, FrontendNotifyService_CreateConnectionServer) error
	CloseConnection(context.Context, *CloseConnectionRequest) (*CloseConnectionResponse, error)
	SystemToFrontendUser(context.Context, *SystemToFrontendUserRequest) (*SystemToFrontendUserResponse, error)
	GetNotifyRecords(context.Context, *GetNotifyRecordsRequest) (*GetNotifyRecordsResponse, error)
	UpdateNotifyRecords(context.Context, *UpdateNotifyRecordsRequest) (*UpdateNotifyRecordsResponse, error)
	AllRead(context.Context, *AllReadRequest) (*AllReadResponse, error)
	ForwardNotify(context.Context, *ForwardNotifyRequest) (*ForwardNotifyResponse, error)
}

// UnimplementedFrontendNotifyServiceServer can be embedded to satisfy
// FrontendNotifyServiceServer for RPCs a given build doesn't need to
// implement, the same forward-compatibility shim protoc-gen-go-grpc emits.
type UnimplementedFrontendNotifyServiceServer struct{}

func (UnimplementedFrontendNotifyServiceServer) CreateConnection(*CreateConnectionRequest, FrontendNotifyService_CreateConnectionServer) error {
	return grpcUnimplemented("CreateConnection")
}
func (UnimplementedFrontendNotifyServiceServer) CloseConnection(context.Context, *CloseConnectionRequest) (*CloseConnectionResponse, error) {
	return nil, grpcUnimplemented("CloseConnection")
}
func (UnimplementedFrontendNotifyServiceServer) SystemToFrontendUser(context.Context, *SystemToFrontendUserRequest) (*SystemToFrontendUserResponse, error) {
	return nil, grpcUnimplemented("SystemToFrontendUser")
}
func (UnimplementedFrontendNotifyServiceServer) GetNotifyRecords(context.Context, *GetNotifyRecordsRequest) (*GetNotifyRecordsResponse, error) {
	return nil, grpcUnimplemented("GetNotifyRecords")
}
func (UnimplementedFrontendNotifyServiceServer) UpdateNotifyRecords(context.Context, *UpdateNotifyRecordsRequest) (*UpdateNotifyRecordsResponse, error) {
	return nil, grpcUnimplemented("UpdateNotifyRecords")
}
func (UnimplementedFrontendNotifyServiceServer) AllRead(context.Context, *AllReadRequest) (*AllReadResponse, error) {
	return nil, grpcUnimplemented("AllRead")
}
func (UnimplementedFrontendNotifyServiceServer) ForwardNotify(context.Context, *ForwardNotifyRequest) (*ForwardNotifyResponse, error) {
	return nil, grpcUnimplemented("ForwardNotify")
}

// FrontendNotifyService_CreateConnectionServer is CreateConnection's
// send-side stream, the per-RPC named interface protoc-gen-go-grpc
// generates for a server-streaming method.
type FrontendNotifyService_CreateConnectionServer interface {
	Send(*Receiver) error
	grpc.ServerStream
}

type frontendNotifyServiceCreateConnectionServer struct {
	grpc.ServerStream
}

func (s *frontendNotifyServiceCreateConnectionServer) Send(r *Receiver) error {
	return s.ServerStream.SendMsg(r)
}

func _FrontendNotifyService_CreateConnection_Handler(srv any, stream grpc.ServerStream) error {
	m := new(CreateConnectionRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(FrontendNotifyServiceServer).CreateConnection(m, &frontendNotifyServiceCreateConnectionServer{stream})
}

func _FrontendNotifyService_CloseConnection_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CloseConnectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontendNotifyServiceServer).CloseConnection(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.FrontendNotifyService/CloseConnection"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FrontendNotifyServiceServer).CloseConnection(ctx, req.(*CloseConnectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _FrontendNotifyService_SystemToFrontendUser_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SystemToFrontendUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontendNotifyServiceServer).SystemToFrontendUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.FrontendNotifyService/SystemToFrontendUser"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FrontendNotifyServiceServer).SystemToFrontendUser(ctx, req.(*SystemToFrontendUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _FrontendNotifyService_GetNotifyRecords_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetNotifyRecordsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontendNotifyServiceServer).GetNotifyRecords(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.FrontendNotifyService/GetNotifyRecords"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FrontendNotifyServiceServer).GetNotifyRecords(ctx, req.(*GetNotifyRecordsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _FrontendNotifyService_UpdateNotifyRecords_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateNotifyRecordsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontendNotifyServiceServer).UpdateNotifyRecords(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.FrontendNotifyService/UpdateNotifyRecords"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FrontendNotifyServiceServer).UpdateNotifyRecords(ctx, req.(*UpdateNotifyRecordsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _FrontendNotifyService_AllRead_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AllReadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontendNotifyServiceServer).AllRead(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.FrontendNotifyService/AllRead"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FrontendNotifyServiceServer).AllRead(ctx, req.(*AllReadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _FrontendNotifyService_ForwardNotify_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ForwardNotifyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontendNotifyServiceServer).ForwardNotify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.FrontendNotifyService/ForwardNotify"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FrontendNotifyServiceServer).ForwardNotify(ctx, req.(*ForwardNotifyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var FrontendNotifyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "notify.v1.FrontendNotifyService",
	HandlerType: (*FrontendNotifyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CloseConnection", Handler: _FrontendNotifyService_CloseConnection_Handler},
		{MethodName: "SystemToFrontendUser", Handler: _FrontendNotifyService_SystemToFrontendUser_Handler},
		{MethodName: "GetNotifyRecords", Handler: _FrontendNotifyService_GetNotifyRecords_Handler},
		{MethodName: "UpdateNotifyRecords", Handler: _FrontendNotifyService_UpdateNotifyRecords_Handler},
		{MethodName: "AllRead", Handler: _FrontendNotifyService_AllRead_Handler},
		{MethodName: "ForwardNotify", Handler: _FrontendNotifyService_ForwardNotify_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "CreateConnection", Handler: _FrontendNotifyService_CreateConnection_Handler, ServerStreams: true},
	},
	Metadata: "notify/v1/notify.proto",
}

// RegisterFrontendNotifyServiceServer binds srv to s, the call
// cmd/server/main.go makes once the *grpc.Server is built.
func RegisterFrontendNotifyServiceServer(s grpc.ServiceRegistrar, srv FrontendNotifyServiceServer) {
	s.RegisterService(&FrontendNotifyService_ServiceDesc, srv)
}
