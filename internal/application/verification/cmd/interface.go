package cmd

import (
	"context"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"

	"github.com/ossm-org/orchid-accounts/internal/domain/valueobject/mails"
	"github.com/ossm-org/orchid-accounts/internal/domain/verification"
)

var (
	tracer = otel.Tracer("orchid-accounts/application/verification/cmd")
	logger = otelslog.NewLogger("orchid-accounts/application/verification/cmd")
)

type Repo interface {
	// ReissueCode locks the recipient's current code (if any), passes it to
	// fn and stores the replacement fn returns. Storing replaces the old row,
	// so the previous code stops being redeemable immediately.
	ReissueCode(ctx context.Context, email string, fn func(ctx context.Context, current *verification.Verification) (*verification.Verification, error)) (*verification.Verification, error)
}

type MailSender interface {
	SendMail(ctx context.Context, payload mails.Payload) error
}
