package mocks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ossm-org/orchid-accounts/internal/domain/verification"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
)

type VerificationRepo struct {
	mu        sync.Mutex
	dbByEmail map[string]*verification.Verification

	// FailNextReissue makes the next ReissueCode call fail with the given
	// error without touching stored state.
	FailNextReissue error
}

func NewVerificationRepo() *VerificationRepo {
	return &VerificationRepo{
		dbByEmail: make(map[string]*verification.Verification),
	}
}

func (r *VerificationRepo) GetByEmail(ctx context.Context, email string) (*verification.Verification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.getLocked(email)
}

func (r *VerificationRepo) getLocked(email string) (*verification.Verification, error) {
	if v, exists := r.dbByEmail[verification.NormalizeEmail(email)]; exists {
		return v, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *VerificationRepo) ReissueCode(
	ctx context.Context,
	email string,
	fn func(ctx context.Context, current *verification.Verification) (*verification.Verification, error),
) (*verification.Verification, error) {
	if fn == nil {
		return nil, errors.New("reissue function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailNextReissue != nil {
		err := r.FailNextReissue
		r.FailNextReissue = nil
		return nil, err
	}

	current, err := r.getLocked(email)
	if err != nil && !errorx.IsNotFound(err) {
		return nil, err
	}

	replacement, err := fn(ctx, current)
	if err != nil {
		return nil, err
	}
	if replacement == nil {
		return nil, errors.New("reissue function returned nil verification")
	}

	r.dbByEmail[replacement.Email()] = replacement
	return replacement, nil
}

func (r *VerificationRepo) save(v *verification.Verification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dbByEmail[v.Email()] = v
}

func (r *VerificationRepo) SeedVerification(t *testing.T, v *verification.Verification) {
	t.Helper()
	require.NotNil(t, v)

	r.save(v)
}

func (r *VerificationRepo) RequireVerificationByEmail(t *testing.T, email string) *verification.Verification {
	t.Helper()

	v, err := r.GetByEmail(context.Background(), email)
	require.NoError(t, err, "expected verification for %s to exist", email)
	return v
}

func (r *VerificationRepo) AssertNoVerificationByEmail(t *testing.T, email string) {
	t.Helper()

	_, err := r.GetByEmail(context.Background(), email)
	require.Error(t, err, "expected no verification for %s", email)
}
