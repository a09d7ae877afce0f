package mailevent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ossm-org/orchid-accounts/internal/domain/user"
	"github.com/ossm-org/orchid-accounts/internal/domain/valueobject/mails"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
	"github.com/ossm-org/orchid-accounts/pkg/logging"
	"github.com/ossm-org/orchid-accounts/pkg/otelx"
)

const UserRegisteredSubject = "欢迎加入 Orchid / Welcome to Orchid"

func (h *MailEventHandler) HandleUserRegistered(ctx context.Context, e *user.UserRegistered) error {
	if e == nil {
		return nil
	}
	const op = "mailevent.MailEventHandler.HandleUserRegistered"

	l := h.logger.With(slog.String("event", "UserRegistered"), slog.String("user.id", e.UserID.String()))
	ctx, span := h.tracer.Start(
		ctx,
		"MailEventHandler.HandleUserRegistered",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("event.user.id", e.UserID.String()),
			attribute.String("event.user.email", logging.RedactEmail(e.Email)),
		),
	)
	defer span.End()

	err := validation.ValidateStruct(e,
		validation.Field(&e.Email, validation.Required, is.EmailFormat),
		validation.Field(&e.Account, validation.Required),
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "validation failed")
		l.ErrorContext(ctx, "validation failed", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	payload := mails.Payload{
		To:      e.Email,
		Subject: UserRegisteredSubject,
		Body: fmt.Sprintf("你好 %s,你的账号已注册成功。\nHi %s, your account has been registered successfully.",
			e.Account, e.Account),
	}
	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		otelx.RecordSpanError(span, err, "failed to send welcome email")
		l.ErrorContext(ctx, "Failed to send welcome email", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	return nil
}
