package mocks

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossm-org/orchid-accounts/internal/domain/event"
)

type EventRepo struct {
	events   []event.Event
	eventsMu sync.Mutex
}

func NewEventRepo() *EventRepo {
	return &EventRepo{
		events: []event.Event{},
	}
}

func (r *EventRepo) appendEvents(events ...event.Event) {
	r.eventsMu.Lock()
	defer r.eventsMu.Unlock()

	r.events = append(r.events, events...)
}

func (r *EventRepo) Events() []event.Event {
	r.eventsMu.Lock()
	defer r.eventsMu.Unlock()

	eventsCopy := make([]event.Event, len(r.events))
	copy(eventsCopy, r.events)
	return eventsCopy
}

func (r *EventRepo) AssertEventCount(t *testing.T, expectedCount int) *EventRepo {
	t.Helper()

	assert.Len(t, r.Events(), expectedCount)
	return r
}

func (r *EventRepo) AssertEventNotExists(t *testing.T, e event.Event) *EventRepo {
	t.Helper()

	for _, ev := range r.Events() {
		if fmt.Sprintf("%T", ev) == fmt.Sprintf("%T", e) {
			t.Errorf("expected event %T to not exist, but it does", e)
			return r
		}
	}

	return r
}

// RequireEventExists returns the first recorded event of the same type as e.
func RequireEventExists(t *testing.T, r *EventRepo, e event.Event) event.Event {
	t.Helper()

	for _, ev := range r.Events() {
		if fmt.Sprintf("%T", ev) == fmt.Sprintf("%T", e) {
			return ev
		}
	}

	require.Failf(t, "event not found", "expected event %T to exist", e)
	return nil
}
