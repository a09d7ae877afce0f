package smtp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ossm-org/orchid-accounts/internal/domain/valueobject/mails"
	"github.com/ossm-org/orchid-accounts/pkg/logging"
	"github.com/ossm-org/orchid-accounts/pkg/otelx"
)

var tracer = otel.Tracer("orchid-accounts/internal/adapters/services/smtp")

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

// Sender delivers mail over SMTP.
type Sender struct {
	tracer trace.Tracer
	cfg    Config
	opts   []mail.Option
}

func NewSender(cfg Config) (*Sender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}

	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	return &Sender{
		tracer: tracer,
		cfg:    cfg,
		opts:   opts,
	}, nil
}

func (s *Sender) SendMail(ctx context.Context, payload mails.Payload) error {
	ctx, span := s.tracer.Start(ctx, "smtp.Sender.SendMail")
	defer span.End()
	otelx.SetSpanAttrs(span, map[string]any{
		"to":      logging.RedactEmail(payload.To),
		"subject": payload.Subject,
	})

	msg := mail.NewMsg()
	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			otelx.RecordSpanError(span, err, "failed to set from address")
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			otelx.RecordSpanError(span, err, "failed to set from address")
			return fmt.Errorf("setting from address: %w", err)
		}
	}
	if err := msg.To(payload.To); err != nil {
		otelx.RecordSpanError(span, err, "failed to set to address")
		return fmt.Errorf("setting to address: %w", err)
	}
	msg.Subject(payload.Subject)
	msg.SetBodyString(mail.TypeTextPlain, payload.Body)

	client, err := mail.NewClient(s.cfg.Host, s.opts...)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to create mail client")
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		otelx.RecordSpanError(span, err, "failed to send mail")
		return fmt.Errorf("sending mail: %w", err)
	}

	return nil
}

// LogSender writes mail to the log instead of delivering it. Used in local
// and test modes where no SMTP server is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(l *slog.Logger) *LogSender {
	if l == nil {
		l = slog.Default()
	}
	return &LogSender{logger: l}
}

func (s *LogSender) SendMail(ctx context.Context, payload mails.Payload) error {
	s.logger.InfoContext(ctx, "mail not sent, smtp is not configured",
		slog.String("to", payload.To),
		slog.String("subject", payload.Subject),
		slog.String("body", payload.Body),
	)
	return nil
}
