package server

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/dimitrije/amazing-calendar/internal/logger"
	"github.com/dimitrije/amazing-calendar/internal/notification/rpc"
	"github.com/dimitrije/amazing-calendar/internal/notification/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

func startServer(t *testing.T, rec Recorder) *rpc.Client {
	t.Helper()
	lis := bufconn.Listen(bufSize)
	srv := New(lis, NewService(rec, logger.Discard()), logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	client, err := rpc.Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return client
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "notifications.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestNotificationService_RoundTrip(t *testing.T) {
	client := startServer(t, openStore(t))
	ctx := context.Background()

	ack, err := client.NotifyEvent(ctx, "Standup", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, rpc.StatusEventNotified, ack)

	ack, err = client.NotifyInvitation(ctx, "bob@example.com", "Standup")
	require.NoError(t, err)
	assert.Equal(t, rpc.StatusInvitationNotified, ack)

	notifications, err := client.ListNotifications(ctx, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	types := []string{notifications[0].Type, notifications[1].Type}
	assert.ElementsMatch(t, []string{storage.TypeEventCreated, storage.TypeInvitation}, types)
	for _, n := range notifications {
		if n.Type == storage.TypeInvitation {
			assert.Equal(t, "bob@example.com", n.Payload["email"])
			assert.Equal(t, "Standup", n.Payload["eventTitle"])
		}
	}
}

func TestNotificationService_InvalidArgument(t *testing.T) {
	client := startServer(t, openStore(t))
	ctx := context.Background()

	_, err := client.NotifyEvent(ctx, "", "alice@example.com")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.NotifyInvitation(ctx, "bob@example.com", " ")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.ListNotifications(ctx, -1)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

type brokenRecorder struct {
	lastLimit int
}

func (b *brokenRecorder) Put(context.Context, string, map[string]any) (*storage.Record, error) {
	return nil, errors.New("disk full")
}

func (b *brokenRecorder) List(_ context.Context, limit int) ([]storage.Record, error) {
	b.lastLimit = limit
	return nil, errors.New("disk full")
}

func TestNotificationService_PersistenceFailureIsInternal(t *testing.T) {
	client := startServer(t, &brokenRecorder{})

	_, err := client.NotifyEvent(context.Background(), "Standup", "alice@example.com")
	assert.Equal(t, codes.Internal, status.Code(err))

	_, err = client.NotifyInvitation(context.Background(), "bob@example.com", "Standup")
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestService_ListNotifications_ClampsLimit(t *testing.T) {
	testCases := []struct {
		requested int
		expected  int
	}{
		{0, DefaultListLimit},
		{10, 10},
		{MaxListLimit + 50, MaxListLimit},
	}

	for _, tc := range testCases {
		rec := &brokenRecorder{}
		svc := NewService(rec, logger.Discard())

		_, err := svc.ListNotifications(context.Background(), &rpc.ListNotificationsRequest{Limit: tc.requested})

		assert.Equal(t, codes.Internal, status.Code(err))
		assert.Equal(t, tc.expected, rec.lastLimit)
	}
}

func TestServer_Health(t *testing.T) {
	lis := bufconn.Listen(bufSize)
	srv := New(lis, NewService(openStore(t), logger.Discard()), logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Serve(ctx) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	defer conn.Close()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: rpc.ServiceName})

	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
}
