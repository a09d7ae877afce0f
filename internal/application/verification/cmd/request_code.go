package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ARUMANDESU/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ossm-org/orchid-accounts/internal/domain/valueobject/mails"
	"github.com/ossm-org/orchid-accounts/internal/domain/verification"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
	"github.com/ossm-org/orchid-accounts/pkg/logging"
	"github.com/ossm-org/orchid-accounts/pkg/otelx"
	"github.com/ossm-org/orchid-accounts/pkg/validationx"
)

const (
	VerificationCodeSubject = "Orchid 验证码 / Verification Code"

	// SendTimeout bounds the synchronous mail delivery so a slow upstream
	// cannot hold the request open indefinitely.
	SendTimeout = 10 * time.Second
)

type RequestCode struct {
	Email string
}

type RequestCodeHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	repo       Repo
	mailsender MailSender
}

type RequestCodeHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Repo       Repo
	MailSender MailSender
}

func NewRequestCodeHandler(args RequestCodeHandlerArgs) *RequestCodeHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &RequestCodeHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		repo:       args.Repo,
		mailsender: args.MailSender,
	}
}

// Handle issues a fresh verification code for the recipient and mails it.
// The code is stored before the mail is sent: if delivery fails the stored
// code stays valid, the client just retries the request.
func (h *RequestCodeHandler) Handle(ctx context.Context, cmd RequestCode) error {
	const op = "cmd.RequestCodeHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "RequestCodeHandler.Handle",
		trace.WithAttributes(
			attribute.String("email", logging.RedactEmail(cmd.Email)),
		))
	defer span.End()

	email := verification.NormalizeEmail(cmd.Email)
	if err := validation.Validate(&email, validationx.EmailRules...); err != nil {
		otelx.RecordSpanError(span, err, "invalid recipient")
		return errorx.Wrap(err, op)
	}

	issued, err := h.repo.ReissueCode(ctx, email, func(ctx context.Context, current *verification.Verification) (*verification.Verification, error) {
		now := time.Now().UTC()
		if current.CooldownActive(now) {
			retryAfter := int(current.RetryAfter(now).Seconds())
			return nil, errorx.NewRateLimitExceededWithRetry(retryAfter)
		}

		return verification.New(email)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to issue verification code")
		return errorx.Wrap(err, op)
	}
	span.AddEvent("verification code stored")

	sendCtx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()

	err = h.mailsender.SendMail(sendCtx, mails.Payload{
		To:      email,
		Subject: VerificationCodeSubject,
		Body: fmt.Sprintf("您的验证码是 %s,%d 分钟内有效。\nYour verification code is %s. It expires in %d minutes.",
			issued.Code(), int(verification.ExpiresIn.Minutes()), issued.Code(), int(verification.ExpiresIn.Minutes())),
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to send verification code")
		h.logger.ErrorContext(ctx, "failed to send verification code",
			slog.String("email", logging.RedactEmail(email)),
			slog.Any("error", err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return errorx.Wrap(errorx.NewUpstreamTimeout().WithCause(err), op)
		}
		return errorx.Wrap(errorx.NewUpstreamServiceError().WithCause(err), op)
	}

	return nil
}
