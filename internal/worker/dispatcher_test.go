package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"zettel-todo/internal/queue"
)

type mockEmailSender struct {
	calls    int
	lastTo   string
	lastCode string
	err      error
}

func (m *mockEmailSender) SendVerificationCode(_ context.Context, toEmail string, code string) error {
	m.calls++
	m.lastTo = toEmail
	m.lastCode = code
	return m.err
}

func TestDispatcherProcess_DevModeSkips(t *testing.T) {
	sender := &mockEmailSender{}
	d := NewDispatcher(zap.NewNop(), queue.NewMemoryQueue(1), sender, true)

	status := d.Process(context.Background(), queue.VerificationJob{Email: "a@x.com", Code: "1234"})
	if status != StatusSkipped {
		t.Fatalf("expected skipped, got %s", status)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no mail transport calls in dev mode, got %d", sender.calls)
	}
}

func TestDispatcherProcess_Sent(t *testing.T) {
	sender := &mockEmailSender{}
	d := NewDispatcher(zap.NewNop(), queue.NewMemoryQueue(1), sender, false)

	status := d.Process(context.Background(), queue.VerificationJob{Email: "a@x.com", Code: "1234"})
	if status != StatusSent {
		t.Fatalf("expected sent, got %s", status)
	}
	if sender.lastTo != "a@x.com" || sender.lastCode != "1234" {
		t.Fatalf("unexpected send: to=%s code=%s", sender.lastTo, sender.lastCode)
	}
}

func TestDispatcherProcess_FailedNoRetry(t *testing.T) {
	sender := &mockEmailSender{err: errors.New("smtp down")}
	d := NewDispatcher(zap.NewNop(), queue.NewMemoryQueue(1), sender, false)

	status := d.Process(context.Background(), queue.VerificationJob{Email: "a@x.com", Code: "1234"})
	if status != StatusFailed {
		t.Fatalf("expected failed, got %s", status)
	}
	if sender.calls != 1 {
		t.Fatalf("expected single attempt, got %d", sender.calls)
	}
}

func TestDispatcherRun_DrainsQueueAndStops(t *testing.T) {
	q := queue.NewMemoryQueue(10)
	sender := &mockEmailSender{}
	d := NewDispatcher(zap.NewNop(), q, sender, false)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := q.Enqueue(ctx, queue.VerificationJob{Email: "a@x.com", Code: "1234"}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	if err := d.Run(runCtx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sender.calls != 3 {
		t.Fatalf("expected 3 sends, got %d", sender.calls)
	}
}
