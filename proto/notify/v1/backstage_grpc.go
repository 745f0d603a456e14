package notifyv1

import (
	"context"

	"google.golang.org/grpc"
)

// BackstageNotifyServiceServer is the server API the backstage package's
// Server implements, matching the RPC set declared in
// proto/notify/v1/notify.proto's BackstageNotifyService.
type BackstageNotifyServiceServer interface {
	CreateConnection(*CreateConnectionRequest, BackstageNotifyService_CreateConnectionServer) error
	CloseConnection(context.Context, *CloseConnectionRequest) (*CloseConnectionResponse, error)
	SystemToBackstageUser(context.Context, *SystemToBackstageUserRequest) (*SystemToBackstageUserResponse, error)
	BackstageSendToUser(context.Context, *BackstageSendToUserRequest) (*BackstageSendToUserResponse, error)
	ForwardNotify(context.Context, *ForwardNotifyRequest) (*ForwardNotifyResponse, error)
	ListClientEvents(context.Context, *ListClientEventsRequest) (*ListClientEventsResponse, error)
	UpdateClientEvent(context.Context, *UpdateClientEventRequest) (*UpdateClientEventResponse, error)
	DeleteClientEvent(context.Context, *DeleteClientEventRequest) (*DeleteClientEventResponse, error)
	ListEventTemplates(context.Context, *ListEventTemplatesRequest) (*ListEventTemplatesResponse, error)
	UpdateTemplate(context.Context, *UpdateTemplateRequest) (*UpdateTemplateResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	ListTaskDetails(context.Context, *ListTaskDetailsRequest) (*ListTaskDetailsResponse, error)
}

// UnimplementedBackstageNotifyServiceServer can be embedded to satisfy
// BackstageNotifyServiceServer for RPCs a given build doesn't need to
// implement.
type UnimplementedBackstageNotifyServiceServer struct{}

func (UnimplementedBackstageNotifyServiceServer) CreateConnection(*CreateConnectionRequest, BackstageNotifyService_CreateConnectionServer) error {
	return grpcUnimplemented("CreateConnection")
}
func (UnimplementedBackstageNotifyServiceServer) CloseConnection(context.Context, *CloseConnectionRequest) (*CloseConnectionResponse, error) {
	return nil, grpcUnimplemented("CloseConnection")
}
func (UnimplementedBackstageNotifyServiceServer) SystemToBackstageUser(context.Context, *SystemToBackstageUserRequest) (*SystemToBackstageUserResponse, error) {
	return nil, grpcUnimplemented("SystemToBackstageUser")
}
func (UnimplementedBackstageNotifyServiceServer) BackstageSendToUser(context.Context, *BackstageSendToUserRequest) (*BackstageSendToUserResponse, error) {
	return nil, grpcUnimplemented("BackstageSendToUser")
}
func (UnimplementedBackstageNotifyServiceServer) ForwardNotify(context.Context, *ForwardNotifyRequest) (*ForwardNotifyResponse, error) {
	return nil, grpcUnimplemented("ForwardNotify")
}
func (UnimplementedBackstageNotifyServiceServer) ListClientEvents(context.Context, *ListClientEventsRequest) (*ListClientEventsResponse, error) {
	return nil, grpcUnimplemented("ListClientEvents")
}
func (UnimplementedBackstageNotifyServiceServer) UpdateClientEvent(context.Context, *UpdateClientEventRequest) (*UpdateClientEventResponse, error) {
	return nil, grpcUnimplemented("UpdateClientEvent")
}
func (UnimplementedBackstageNotifyServiceServer) DeleteClientEvent(context.Context, *DeleteClientEventRequest) (*DeleteClientEventResponse, error) {
	return nil, grpcUnimplemented("DeleteClientEvent")
}
func (UnimplementedBackstageNotifyServiceServer) ListEventTemplates(context.Context, *ListEventTemplatesRequest) (*ListEventTemplatesResponse, error) {
	return nil, grpcUnimplemented("ListEventTemplates")
}
func (UnimplementedBackstageNotifyServiceServer) UpdateTemplate(context.Context, *UpdateTemplateRequest) (*UpdateTemplateResponse, error) {
	return nil, grpcUnimplemented("UpdateTemplate")
}
func (UnimplementedBackstageNotifyServiceServer) ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error) {
	return nil, grpcUnimplemented("ListTasks")
}
func (UnimplementedBackstageNotifyServiceServer) ListTaskDetails(context.Context, *ListTaskDetailsRequest) (*ListTaskDetailsResponse, error) {
	return nil, grpcUnimplemented("ListTaskDetails")
}

// BackstageNotifyService_CreateConnectionServer is CreateConnection's
// send-side stream.
type BackstageNotifyService_CreateConnectionServer interface {
	Send(*Receiver) error
	grpc.ServerStream
}

type backstageNotifyServiceCreateConnectionServer struct {
	grpc.ServerStream
}

func (s *backstageNotifyServiceCreateConnectionServer) Send(r *Receiver) error {
	return s.ServerStream.SendMsg(r)
}

func _BackstageNotifyService_CreateConnection_Handler(srv any, stream grpc.ServerStream) error {
	m := new(CreateConnectionRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(BackstageNotifyServiceServer).CreateConnection(m, &backstageNotifyServiceCreateConnectionServer{stream})
}

func _BackstageNotifyService_CloseConnection_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CloseConnectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).CloseConnection(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/CloseConnection"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).CloseConnection(ctx, req.(*CloseConnectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackstageNotifyService_SystemToBackstageUser_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SystemToBackstageUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).SystemToBackstageUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/SystemToBackstageUser"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).SystemToBackstageUser(ctx, req.(*SystemToBackstageUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackstageNotifyService_BackstageSendToUser_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(BackstageSendToUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).BackstageSendToUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/BackstageSendToUser"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).BackstageSendToUser(ctx, req.(*BackstageSendToUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackstageNotifyService_ForwardNotify_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ForwardNotifyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).ForwardNotify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/ForwardNotify"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).ForwardNotify(ctx, req.(*ForwardNotifyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackstageNotifyService_ListClientEvents_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListClientEventsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).ListClientEvents(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/ListClientEvents"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).ListClientEvents(ctx, req.(*ListClientEventsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackstageNotifyService_UpdateClientEvent_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateClientEventRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).UpdateClientEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/UpdateClientEvent"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).UpdateClientEvent(ctx, req.(*UpdateClientEventRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackstageNotifyService_DeleteClientEvent_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteClientEventRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).DeleteClientEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/DeleteClientEvent"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).DeleteClientEvent(ctx, req.(*DeleteClientEventRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackstageNotifyService_ListEventTemplates_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListEventTemplatesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).ListEventTemplates(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/ListEventTemplates"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).ListEventTemplates(ctx, req.(*ListEventTemplatesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackstageNotifyService_UpdateTemplate_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateTemplateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).UpdateTemplate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/UpdateTemplate"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).UpdateTemplate(ctx, req.(*UpdateTemplateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackstageNotifyService_ListTasks_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListTasksRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).ListTasks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/ListTasks"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).ListTasks(ctx, req.(*ListTasksRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackstageNotifyService_ListTaskDetails_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListTaskDetailsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackstageNotifyServiceServer).ListTaskDetails(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/notify.v1.BackstageNotifyService/ListTaskDetails"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BackstageNotifyServiceServer).ListTaskDetails(ctx, req.(*ListTaskDetailsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var BackstageNotifyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "notify.v1.BackstageNotifyService",
	HandlerType: (*BackstageNotifyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CloseConnection", Handler: _BackstageNotifyService_CloseConnection_Handler},
		{MethodName: "SystemToBackstageUser", Handler: _BackstageNotifyService_SystemToBackstageUser_Handler},
		{MethodName: "BackstageSendToUser", Handler: _BackstageNotifyService_BackstageSendToUser_Handler},
		{MethodName: "ForwardNotify", Handler: _BackstageNotifyService_ForwardNotify_Handler},
		{MethodName: "ListClientEvents", Handler: _BackstageNotifyService_ListClientEvents_Handler},
		{MethodName: "UpdateClientEvent", Handler: _BackstageNotifyService_UpdateClientEvent_Handler},
		{MethodName: "DeleteClientEvent", Handler: _BackstageNotifyService_DeleteClientEvent_Handler},
		{MethodName: "ListEventTemplates", Handler: _BackstageNotifyService_ListEventTemplates_Handler},
		{MethodName: "UpdateTemplate", Handler: _BackstageNotifyService_UpdateTemplate_Handler},
		{MethodName: "ListTasks", Handler: _BackstageNotifyService_ListTasks_Handler},
		{MethodName: "ListTaskDetails", Handler: _BackstageNotifyService_ListTaskDetails_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "CreateConnection", Handler: _BackstageNotifyService_CreateConnection_Handler, ServerStreams: true},
	},
	Metadata: "notify/v1/notify.proto",
}

// RegisterBackstageNotifyServiceServer binds srv to s, the call
// cmd/server/main.go makes once the *grpc.Server is built.
func RegisterBackstageNotifyServiceServer(s grpc.ServiceRegistrar, srv BackstageNotifyServiceServer) {
	s.RegisterService(&BackstageNotifyService_ServiceDesc, srv)
}
