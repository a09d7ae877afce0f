package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/ossm-org/orchid-accounts/internal/domain/verification"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
	"github.com/ossm-org/orchid-accounts/pkg/otelx"
	"github.com/ossm-org/orchid-accounts/pkg/postgres"
)

type VerificationRepo struct {
	tracer trace.Tracer
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// NewVerificationRepo creates a new instance of VerificationRepo.
// It also sets default tracer and logger if they are nil.
//
//	WARNING; panics if pool is nil
func NewVerificationRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *VerificationRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &VerificationRepo{
		tracer: t,
		logger: l,
		pool:   pool,
	}
}

const verificationColumns = "email, code, is_used, resend_timeout, expires_at, created_at, updated_at"

func (r *VerificationRepo) GetByEmail(ctx context.Context, email string) (*verification.Verification, error) {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.GetByEmail")
	defer span.End()

	query := `
        SELECT ` + verificationColumns + `
        FROM verification_codes
        WHERE email = $1;
    `

	var dto VerificationDTO
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&dto.Email, &dto.Code, &dto.IsUsed,
		&dto.ResendTimeout, &dto.ExpiresAt,
		&dto.CreatedAt, &dto.UpdatedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get verification code by email")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNotFound().WithCause(err)
		}
		return nil, mapStorageError(err)
	}

	return VerificationToDomain(dto), nil
}

// ReissueCode locks the recipient's row, lets fn decide on the replacement
// and upserts it. The upsert keeps at most one row per email, so storing a
// replacement kills the previous code in the same statement.
func (r *VerificationRepo) ReissueCode(
	ctx context.Context,
	email string,
	fn func(ctx context.Context, current *verification.Verification) (*verification.Verification, error),
) (*verification.Verification, error) {
	ctx, span := r.tracer.Start(ctx, "VerificationRepo.ReissueCode")
	defer span.End()
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "reissue function cannot be nil")
		return nil, ErrNilFunc
	}

	selectquery := `
        SELECT ` + verificationColumns + `
        FROM verification_codes
        WHERE email = $1
        FOR UPDATE;
    `

	var issued *verification.Verification
	err := postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var current *verification.Verification

		var dto VerificationDTO
		err := tx.QueryRow(ctx, selectquery, email).Scan(
			&dto.Email, &dto.Code, &dto.IsUsed,
			&dto.ResendTimeout, &dto.ExpiresAt,
			&dto.CreatedAt, &dto.UpdatedAt,
		)
		switch {
		case err == nil:
			current = VerificationToDomain(dto)
		case errors.Is(err, pgx.ErrNoRows):
			current = nil
		default:
			otelx.RecordSpanError(span, err, "failed to get verification code for update")
			return err
		}

		replacement, err := fn(ctx, current)
		if err != nil {
			return err
		}
		if replacement == nil {
			return errors.New("reissue function returned nil verification")
		}

		if err := upsertVerification(ctx, tx, replacement); err != nil {
			otelx.RecordSpanError(span, err, "failed to upsert verification code")
			return err
		}

		issued = replacement
		return nil
	})
	if err != nil {
		return nil, mapStorageError(err)
	}

	return issued, nil
}

func upsertVerification(ctx context.Context, tx pgx.Tx, v *verification.Verification) error {
	dto := DomainToVerificationDTO(v)

	query := `
        INSERT INTO verification_codes (email, code, is_used, resend_timeout, expires_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (email) DO UPDATE
        SET code = EXCLUDED.code, is_used = EXCLUDED.is_used,
            resend_timeout = EXCLUDED.resend_timeout, expires_at = EXCLUDED.expires_at,
            updated_at = EXCLUDED.updated_at;
    `

	res, err := tx.Exec(ctx, query,
		dto.Email, dto.Code, dto.IsUsed,
		dto.ResendTimeout, dto.ExpiresAt,
		dto.CreatedAt, dto.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("failed to upsert verification code: %w", ErrNoRowsAffected)
	}

	return nil
}

// consumeForUpdate redeems the code for email inside the caller's tx. Used
// by UserRepo.RegisterUser so the consume rolls back together with a failed
// user insert.
func consumeForUpdate(ctx context.Context, tx pgx.Tx, email, code string) error {
	selectquery := `
        SELECT ` + verificationColumns + `
        FROM verification_codes
        WHERE email = $1
        FOR UPDATE;
    `
	updatequery := `
        UPDATE verification_codes
        SET is_used = TRUE, updated_at = $2
        WHERE email = $1;
    `

	var dto VerificationDTO
	err := tx.QueryRow(ctx, selectquery, email).Scan(
		&dto.Email, &dto.Code, &dto.IsUsed,
		&dto.ResendTimeout, &dto.ExpiresAt,
		&dto.CreatedAt, &dto.UpdatedAt,
	)
	var v *verification.Verification
	switch {
	case err == nil:
		v = VerificationToDomain(dto)
	case errors.Is(err, pgx.ErrNoRows):
		v = nil
	default:
		return err
	}

	if err := v.Consume(code); err != nil {
		return err
	}

	res, err := tx.Exec(ctx, updatequery, v.Email(), v.UpdatedAt())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("failed to mark verification code as used: %w", ErrNoRowsAffected)
	}

	return nil
}
