package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ossm-org/orchid-accounts/internal/domain/user"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
)

var (
	ErrNoRowsAffected = errors.New("no rows affected")
	ErrNilFunc        = errors.New("update function cannot be nil")
)

const (
	usersAccountKey = "users_account_key"
	usersEmailKey   = "users_email_key"
)

// mapUserUniqueViolation translates a unique-constraint violation on the
// users table into the matching domain error. The constraints are the real
// serialization point for concurrent registrations; the application-level
// pre-checks only give friendlier errors earlier.
func mapUserUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case usersAccountKey:
		return user.ErrAccountTaken
	case usersEmailKey:
		return user.ErrEmailTaken
	default:
		return err
	}
}

// mapStorageError classifies infrastructure failures (lost connections,
// statement timeouts) as a retriable service_unavailable at the repository
// boundary. Errors that already carry a classification pass through so the
// domain outcome is not masked.
func mapStorageError(err error) error {
	if err == nil {
		return nil
	}

	var i18nErr *errorx.I18nError
	if errors.As(err, &i18nErr) {
		return err
	}

	return errorx.NewServiceUnavailable().WithCause(err)
}
