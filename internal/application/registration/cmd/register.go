package cmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ossm-org/orchid-accounts/internal/domain/user"
	"github.com/ossm-org/orchid-accounts/internal/domain/verification"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
	"github.com/ossm-org/orchid-accounts/pkg/logging"
	"github.com/ossm-org/orchid-accounts/pkg/otelx"
)

type Register struct {
	Account  string
	Email    string
	Password string
	Code     string
}

// RegisterResult is the public identity of the new user. Nothing derived
// from the password ever leaves the handler.
type RegisterResult struct {
	Account string
	Email   string
}

type RegisterHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	userrepo   UserRepo
	usergetter UserGetter
	hasher     Hasher
}

type RegisterHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	UserRepo   UserRepo
	UserGetter UserGetter
	Hasher     Hasher
}

func NewRegisterHandler(args RegisterHandlerArgs) *RegisterHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &RegisterHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		userrepo:   args.UserRepo,
		usergetter: args.UserGetter,
		hasher:     args.Hasher,
	}
}

func (h *RegisterHandler) Handle(ctx context.Context, cmd Register) (*RegisterResult, error) {
	const op = "cmd.RegisterHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "RegisterHandler.Handle",
		trace.WithAttributes(
			attribute.String("account", logging.RedactAccount(cmd.Account)),
			attribute.String("email", logging.RedactEmail(cmd.Email)),
		))
	defer span.End()

	if err := user.ValidateRegistration(cmd.Account, cmd.Email, cmd.Password); err != nil {
		otelx.RecordSpanError(span, err, "registration input rejected")
		return nil, errorx.Wrap(err, op)
	}

	// Pre-checks give friendly errors early; the unique constraints inside
	// RegisterUser stay the real serialization point.
	existing, err := h.usergetter.GetUserByAccount(ctx, cmd.Account)
	if err != nil && !errorx.IsNotFound(err) {
		otelx.RecordSpanError(span, err, "failed to get user by account")
		return nil, errorx.Wrap(err, op)
	}
	if existing != nil {
		otelx.RecordSpanError(span, user.ErrAccountTaken, "account already taken")
		return nil, errorx.Wrap(user.ErrAccountTaken, op)
	}

	email := verification.NormalizeEmail(cmd.Email)
	existing, err = h.usergetter.GetUserByEmail(ctx, email)
	if err != nil && !errorx.IsNotFound(err) {
		otelx.RecordSpanError(span, err, "failed to get user by email")
		return nil, errorx.Wrap(err, op)
	}
	if existing != nil {
		otelx.RecordSpanError(span, user.ErrEmailTaken, "email already taken")
		return nil, errorx.Wrap(user.ErrEmailTaken, op)
	}

	passHash, err := h.hasher.Hash(cmd.Password)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to hash password")
		return nil, errorx.Wrap(err, op)
	}

	u, err := user.NewUser(user.NewUserArgs{
		Account:  cmd.Account,
		Email:    email,
		PassHash: passHash,
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to build user")
		return nil, errorx.Wrap(err, op)
	}

	if err := h.userrepo.RegisterUser(ctx, u, cmd.Code); err != nil {
		otelx.RecordSpanError(span, err, "failed to register user")
		return nil, errorx.Wrap(err, op)
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("user.id", u.ID().String()),
		slog.String("user.account", logging.RedactAccount(u.Account())),
	)

	return &RegisterResult{
		Account: u.Account(),
		Email:   u.Email(),
	}, nil
}
