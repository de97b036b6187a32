package dispatch_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dimitrije/amazing-calendar/internal/dispatch"
	"github.com/dimitrije/amazing-calendar/internal/logger"
	"github.com/dimitrije/amazing-calendar/internal/metrics"
	"github.com/dimitrije/amazing-calendar/internal/models"
	"github.com/dimitrije/amazing-calendar/internal/notification/rpc"
	"github.com/dimitrije/amazing-calendar/internal/policy"
	"github.com/dimitrije/amazing-calendar/internal/services"
	"github.com/dimitrije/amazing-calendar/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestInvite_SucceedsWhenNotificationServiceUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs := &syncBuffer{}
	log := logger.Setup(logs, false)
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	// Nothing listens on port 1.
	client, err := rpc.Dial("127.0.0.1:1")
	require.NoError(t, err)
	defer client.Close()

	queue := dispatch.NewMemoryQueue(16)
	dispatcher := dispatch.NewDispatcher(queue, collector, log)
	worker := dispatch.NewWorker(queue, client, collector, log, dispatch.WorkerConfig{Timeout: 500 * time.Millisecond})
	go func() { _ = worker.Run(ctx) }()

	st := store.NewMemoryStore()
	alice, err := st.CreateUser(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	_, err = st.CreateUser(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)
	event, err := st.CreateEvent(ctx, models.Event{
		Title:     "Standup",
		StartTime: time.Now().Add(time.Hour),
		EndTime:   time.Now().Add(2 * time.Hour),
		CreatorID: alice.ID,
	})
	require.NoError(t, err)

	svc := services.NewParticipationService(st, policy.Default(), dispatcher, log)
	participation, err := svc.Invite(ctx, alice.ID, event.ID, "bob@example.com")

	require.NoError(t, err)
	assert.Equal(t, models.StatusInvited, participation.Status)

	assert.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "notification delivery failed")
	}, 5*time.Second, 20*time.Millisecond)
	expected := `
# HELP calendar_dispatch_failed_total Notification messages abandoned after all attempts.
# TYPE calendar_dispatch_failed_total counter
calendar_dispatch_failed_total{kind="invitation_sent"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "calendar_dispatch_failed_total"))
}
