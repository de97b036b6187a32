package rpc

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls the notification service.
type Client struct {
	conn *grpc.ClientConn
	opts []grpc.CallOption
}

// DefaultDialOptions are the options Dial uses before any caller overrides.
func DefaultDialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// Dial creates a lazily connecting client. Connection errors surface on the first call.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	conn, err := grpc.NewClient(addr, append(DefaultDialOptions(), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial notification service %s: %w", addr, err)
	}
	return NewClient(conn), nil
}

func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{
		conn: conn,
		opts: []grpc.CallOption{grpc.CallContentSubtype(CodecName)},
	}
}

func (c *Client) NotifyEvent(ctx context.Context, title, creator string) (string, error) {
	out := new(StatusReply)
	if err := c.conn.Invoke(ctx, MethodNotifyEvent, &NotifyEventRequest{Title: title, Creator: creator}, out, c.opts...); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *Client) NotifyInvitation(ctx context.Context, email, eventTitle string) (string, error) {
	out := new(StatusReply)
	if err := c.conn.Invoke(ctx, MethodNotifyInvitation, &NotifyInvitationRequest{Email: email, EventTitle: eventTitle}, out, c.opts...); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *Client) ListNotifications(ctx context.Context, limit int) ([]Notification, error) {
	out := new(ListNotificationsReply)
	if err := c.conn.Invoke(ctx, MethodListNotifications, &ListNotificationsRequest{Limit: limit}, out, c.opts...); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
