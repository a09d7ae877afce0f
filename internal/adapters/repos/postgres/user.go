package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/ossm-org/orchid-accounts/internal/domain/user"
	"github.com/ossm-org/orchid-accounts/pkg/env"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
	"github.com/ossm-org/orchid-accounts/pkg/otelx"
	"github.com/ossm-org/orchid-accounts/pkg/postgres"
	"github.com/ossm-org/orchid-accounts/pkg/watermillx"
)

type UserRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	wlogger watermill.LoggerAdapter
	pool    *pgxpool.Pool
}

// NewUserRepo creates a new instance of UserRepo.
// It also sets default tracer and logger if they are nil.
//
//	WARNING; panics if pool is nil
func NewUserRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *UserRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &UserRepo{
		tracer:  t,
		logger:  l,
		wlogger: watermillx.NewOTelFilteredSlogLogger(l, env.Current().SlogLevel()),
		pool:    pool,
	}
}

const userColumns = "id, account, email, pass_hash, created_at, updated_at"

func (r *UserRepo) GetUserByAccount(ctx context.Context, account string) (*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepo.GetUserByAccount")
	defer span.End()

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE account = $1;
    `

	return r.getUser(ctx, span, query, account)
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepo.GetUserByEmail")
	defer span.End()

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1;
    `

	return r.getUser(ctx, span, query, email)
}

func (r *UserRepo) getUser(ctx context.Context, span trace.Span, query string, arg any) (*user.User, error) {
	var dto UserDTO
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&dto.ID, &dto.Account, &dto.Email,
		&dto.PassHash, &dto.CreatedAt, &dto.UpdatedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, mapStorageError(err)
	}

	return UserToDomain(dto), nil
}

// RegisterUser redeems the verification code and inserts the user in one
// transaction. If the insert fails the consume rolls back with it, leaving
// the code available for another attempt.
func (r *UserRepo) RegisterUser(ctx context.Context, u *user.User, code string) error {
	ctx, span := r.tracer.Start(ctx, "UserRepo.RegisterUser")
	defer span.End()
	if u == nil {
		err := errors.New("user cannot be nil")
		otelx.RecordSpanError(span, err, "invalid argument")
		return err
	}

	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := consumeForUpdate(ctx, tx, u.Email(), code); err != nil {
			return err
		}

		if err := insertUser(ctx, tx, u); err != nil {
			otelx.RecordSpanError(span, err, "failed to insert user")
			return err
		}

		if err := watermillx.Publish(ctx, tx, r.wlogger, u.GetUncommittedEvents()...); err != nil {
			otelx.RecordSpanError(span, err, "failed to publish user events")
			return err
		}

		return nil
	})
	if err != nil {
		return mapStorageError(err)
	}

	u.MarkEventsAsCommitted()

	return nil
}

func insertUser(ctx context.Context, tx pgx.Tx, u *user.User) error {
	dto := DomainToUserDTO(u)

	query := `
        INSERT INTO users (id, account, email, pass_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `

	res, err := tx.Exec(ctx, query,
		dto.ID, dto.Account, dto.Email,
		dto.PassHash, dto.CreatedAt, dto.UpdatedAt,
	)
	if err != nil {
		return mapUserUniqueViolation(err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("failed to insert user: %w", ErrNoRowsAffected)
	}

	return nil
}
