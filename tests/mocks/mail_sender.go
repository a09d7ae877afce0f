package mocks

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/ossm-org/orchid-accounts/internal/domain/valueobject/mails"
)

type MailSender struct {
	mu        sync.Mutex
	sentMails []mails.Payload

	// FailNextSend makes the next SendMail call fail with the given error.
	FailNextSend error
	// BlockUntilCtxDone makes SendMail wait for ctx cancellation and return
	// ctx.Err(), simulating an unresponsive upstream.
	BlockUntilCtxDone bool
}

func NewMailSender() *MailSender {
	return &MailSender{
		sentMails: make([]mails.Payload, 0),
	}
}

func (m *MailSender) SendMail(ctx context.Context, payload mails.Payload) error {
	m.mu.Lock()
	if m.FailNextSend != nil {
		err := m.FailNextSend
		m.FailNextSend = nil
		m.mu.Unlock()
		return err
	}
	block := m.BlockUntilCtxDone
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sentMails = append(m.sentMails, payload)
	return nil
}

func (m *MailSender) SentMails() []mails.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]mails.Payload{}, m.sentMails...)
}

func (m *MailSender) AssertMailSent(t *testing.T, email, subject string) {
	t.Helper()

	for _, mail := range m.SentMails() {
		if mail.To == email && strings.Contains(mail.Subject, subject) {
			return
		}
	}
	t.Errorf("Expected mail to %s with subject containing %s not found", email, subject)
}

func (m *MailSender) AssertNothingSent(t *testing.T) {
	t.Helper()

	if sent := m.SentMails(); len(sent) != 0 {
		t.Errorf("Expected no mails to be sent, got %d", len(sent))
	}
}
