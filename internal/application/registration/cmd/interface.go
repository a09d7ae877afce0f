package cmd

import (
	"context"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"

	"github.com/ossm-org/orchid-accounts/internal/domain/user"
)

var (
	tracer = otel.Tracer("orchid-accounts/application/registration/cmd")
	logger = otelslog.NewLogger("orchid-accounts/application/registration/cmd")
)

type UserRepo interface {
	// RegisterUser consumes the verification code for u's email and inserts
	// u in one transaction. If the insert fails the consume rolls back with
	// it, so the code stays redeemable.
	RegisterUser(ctx context.Context, u *user.User, code string) error
}

type UserGetter interface {
	GetUserByAccount(ctx context.Context, account string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
}

type Hasher interface {
	Hash(password string) ([]byte, error)
}
