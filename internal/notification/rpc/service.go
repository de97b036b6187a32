// Package rpc defines the notification service contract and its gRPC plumbing.
//
// Messages are plain Go structs carried by the registered "json" codec, so the
// service only speaks the application/grpc+json content type. Clients built
// from protobuf stubs cannot call it; callers must use Client or set
// grpc.CallContentSubtype(CodecName) themselves.
package rpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const (
	ServiceName = "notification.NotificationService"

	MethodNotifyEvent       = "/" + ServiceName + "/NotifyEvent"
	MethodNotifyInvitation  = "/" + ServiceName + "/NotifyInvitation"
	MethodListNotifications = "/" + ServiceName + "/ListNotifications"
)

const (
	StatusEventNotified      = "EVENT_NOTIFIED"
	StatusInvitationNotified = "INVITATION_NOTIFIED"
)

type NotifyEventRequest struct {
	Title   string `json:"title"`
	Creator string `json:"creator"`
}

type NotifyInvitationRequest struct {
	Email      string `json:"email"`
	EventTitle string `json:"eventTitle"`
}

type StatusReply struct {
	Status string `json:"status"`
}

type ListNotificationsRequest struct {
	Limit int `json:"limit"`
}

type Notification struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}

type ListNotificationsReply struct {
	Notifications []Notification `json:"notifications"`
}

// NotificationServiceServer is implemented by the notification service.
type NotificationServiceServer interface {
	NotifyEvent(ctx context.Context, req *NotifyEventRequest) (*StatusReply, error)
	NotifyInvitation(ctx context.Context, req *NotifyInvitationRequest) (*StatusReply, error)
	ListNotifications(ctx context.Context, req *ListNotificationsRequest) (*ListNotificationsReply, error)
}

func RegisterNotificationServiceServer(s grpc.ServiceRegistrar, srv NotificationServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func notifyEventHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(NotifyEventRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NotificationServiceServer).NotifyEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodNotifyEvent}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NotificationServiceServer).NotifyEvent(ctx, req.(*NotifyEventRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func notifyInvitationHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(NotifyInvitationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NotificationServiceServer).NotifyInvitation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodNotifyInvitation}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NotificationServiceServer).NotifyInvitation(ctx, req.(*NotifyInvitationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listNotificationsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListNotificationsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NotificationServiceServer).ListNotifications(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListNotifications}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NotificationServiceServer).ListNotifications(ctx, req.(*ListNotificationsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes the notification service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NotificationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NotifyEvent", Handler: notifyEventHandler},
		{MethodName: "NotifyInvitation", Handler: notifyInvitationHandler},
		{MethodName: "ListNotifications", Handler: listNotificationsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notification.proto",
}
