// Package server hosts the notification gRPC service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/dimitrije/amazing-calendar/internal/notification/rpc"
	"github.com/dimitrije/amazing-calendar/internal/notification/storage"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Recorder is the persistence the service needs.
type Recorder interface {
	Put(ctx context.Context, notificationType string, payload map[string]any) (*storage.Record, error)
	List(ctx context.Context, limit int) ([]storage.Record, error)
}

// Service implements rpc.NotificationServiceServer.
type Service struct {
	store  Recorder
	logger *slog.Logger
}

func NewService(store Recorder, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) NotifyEvent(ctx context.Context, req *rpc.NotifyEventRequest) (*rpc.StatusReply, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Creator) == "" {
		return nil, status.Error(codes.InvalidArgument, "title and creator are required")
	}

	rec, err := s.store.Put(ctx, storage.TypeEventCreated, map[string]any{
		"title":   req.Title,
		"creator": req.Creator,
	})
	if err != nil {
		s.logger.Error("failed to record event notification", "error", err)
		return nil, status.Error(codes.Internal, "failed to record notification")
	}

	s.logger.Info("event notification recorded", "id", rec.ID, "title", req.Title)
	return &rpc.StatusReply{Status: rpc.StatusEventNotified}, nil
}

func (s *Service) NotifyInvitation(ctx context.Context, req *rpc.NotifyInvitationRequest) (*rpc.StatusReply, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.EventTitle) == "" {
		return nil, status.Error(codes.InvalidArgument, "email and eventTitle are required")
	}

	rec, err := s.store.Put(ctx, storage.TypeInvitation, map[string]any{
		"email":      req.Email,
		"eventTitle": req.EventTitle,
	})
	if err != nil {
		s.logger.Error("failed to record invitation notification", "error", err)
		return nil, status.Error(codes.Internal, "failed to record notification")
	}

	s.logger.Info("invitation notification recorded", "id", rec.ID, "event_title", req.EventTitle)
	return &rpc.StatusReply{Status: rpc.StatusInvitationNotified}, nil
}

func (s *Service) ListNotifications(ctx context.Context, req *rpc.ListNotificationsRequest) (*rpc.ListNotificationsReply, error) {
	limit := req.Limit
	switch {
	case limit < 0:
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	case limit == 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	records, err := s.store.List(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list notifications", "error", err)
		return nil, status.Error(codes.Internal, "failed to list notifications")
	}

	out := make([]rpc.Notification, len(records))
	for i, r := range records {
		out[i] = rpc.Notification{ID: r.ID, Type: r.Type, Payload: r.Payload, CreatedAt: r.CreatedAt}
	}
	return &rpc.ListNotificationsReply{Notifications: out}, nil
}

// Server hosts the notification gRPC API and its health service.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	logger     *slog.Logger
}

// New registers svc on a fresh gRPC server bound to listener.
func New(listener net.Listener, svc rpc.NotificationServiceServer, logger *slog.Logger) *Server {
	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	rpc.RegisterNotificationServiceServer(grpcServer, svc)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(rpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     logger,
	}
}

// Listen opens a TCP listener on addr and builds a Server on it.
func Listen(addr string, svc rpc.NotificationServiceServer, logger *slog.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	return New(listener, svc, logger), nil
}

func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve runs the gRPC server until ctx is cancelled, then stops gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}

	s.logger.Info("notification service listening", "addr", s.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}
