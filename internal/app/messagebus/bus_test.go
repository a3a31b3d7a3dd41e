package messagebus

import (
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/domain"
)

type testEvent struct {
	kind string
	at   time.Time
}

func (e testEvent) Type() string           { return e.kind }
func (e testEvent) PublishedAt() time.Time { return e.at }

func TestPublishDispatchesToRegisteredHandlers(t *testing.T) {
	bus := New(slog.Default())

	var handled atomic.Int32
	bus.Register("athlete.profile_created", func(event domain.Event) error {
		handled.Add(1)
		return nil
	})

	err := bus.PublishEvents(
		testEvent{kind: "athlete.profile_created", at: time.Now()},
		testEvent{kind: "account.login", at: time.Now()},
		testEvent{kind: "athlete.profile_created", at: time.Now()},
	)
	if err != nil {
		t.Fatalf("PublishEvents() error = %v", err)
	}

	bus.Close()

	if got := handled.Load(); got != 2 {
		t.Errorf("handled = %d, want 2", got)
	}
}
