package user

import (
	"github.com/ossm-org/orchid-accounts/internal/domain/event"
)

const EventStreamName = "events_user"

type UserRegistered struct {
	event.Header
	event.Otel
	UserID  ID     `json:"user_id"`
	Account string `json:"account"`
	Email   string `json:"email"`
}

func (e *UserRegistered) GetStreamName() string {
	return EventStreamName
}
