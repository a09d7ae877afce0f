package mocks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ossm-org/orchid-accounts/internal/domain/user"
	"github.com/ossm-org/orchid-accounts/internal/domain/verification"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
)

// UserRepo mimics the postgres repo including its transactional guarantee:
// RegisterUser consumes the code and inserts the user atomically, and a
// failed insert leaves the code unconsumed.
type UserRepo struct {
	*EventRepo
	mu        sync.Mutex
	byAccount map[string]*user.User
	byEmail   map[string]*user.User

	Verifications *VerificationRepo

	// FailNextRegister makes the next RegisterUser call fail after the code
	// check but before anything is persisted, simulating an insert failure
	// that rolls the transaction back.
	FailNextRegister error
}

func NewUserRepo(verifications *VerificationRepo) *UserRepo {
	return &UserRepo{
		EventRepo:     NewEventRepo(),
		byAccount:     make(map[string]*user.User),
		byEmail:       make(map[string]*user.User),
		Verifications: verifications,
	}
}

func (r *UserRepo) GetUserByAccount(ctx context.Context, account string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, exists := r.byAccount[account]; exists {
		return u, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, exists := r.byEmail[verification.NormalizeEmail(email)]; exists {
		return u, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *UserRepo) RegisterUser(ctx context.Context, u *user.User, code string) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Consume on a copy first; the consumed state is persisted only when the
	// whole operation succeeds, like a rolled-back transaction.
	stored, err := r.Verifications.GetByEmail(ctx, u.Email())
	if errorx.IsNotFound(err) {
		stored = nil
	} else if err != nil {
		return err
	}

	consumed := cloneVerification(stored)
	if err := consumed.Consume(code); err != nil {
		return err
	}

	if r.FailNextRegister != nil {
		err := r.FailNextRegister
		r.FailNextRegister = nil
		return err
	}

	if _, exists := r.byAccount[u.Account()]; exists {
		return user.ErrAccountTaken
	}
	if _, exists := r.byEmail[u.Email()]; exists {
		return user.ErrEmailTaken
	}

	r.byAccount[u.Account()] = u
	r.byEmail[u.Email()] = u
	r.Verifications.save(consumed)

	r.appendEvents(u.GetUncommittedEvents()...)
	u.MarkEventsAsCommitted()

	return nil
}

func cloneVerification(v *verification.Verification) *verification.Verification {
	if v == nil {
		return nil
	}

	return verification.Rehydrate(verification.RehydrateArgs{
		Email:         v.Email(),
		Code:          v.Code(),
		Used:          v.Used(),
		ResendTimeout: v.ResendTimeout(),
		ExpiresAt:     v.ExpiresAt(),
		CreatedAt:     v.CreatedAt(),
		UpdatedAt:     v.UpdatedAt(),
	})
}

func (r *UserRepo) SeedUser(t *testing.T, u *user.User) {
	t.Helper()
	require.NotNil(t, u)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byAccount[u.Account()] = u
	r.byEmail[u.Email()] = u
}

func (r *UserRepo) RequireUserByAccount(t *testing.T, account string) *user.User {
	t.Helper()

	u, err := r.GetUserByAccount(context.Background(), account)
	require.NoError(t, err, "expected user with account %s to exist", account)
	return u
}

func (r *UserRepo) AssertNoUserByAccount(t *testing.T, account string) {
	t.Helper()

	_, err := r.GetUserByAccount(context.Background(), account)
	require.Error(t, err, "expected no user with account %s", account)
}
