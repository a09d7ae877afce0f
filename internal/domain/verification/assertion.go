package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// VerificationAssertion is a test helper for fluent assertions on a
// Verification aggregate.
type VerificationAssertion struct {
	v *Verification
}

func NewVerificationAssertion(v *Verification) *VerificationAssertion {
	return &VerificationAssertion{v: v}
}

func (a *VerificationAssertion) AssertEmail(t *testing.T, expected string) *VerificationAssertion {
	t.Helper()
	assert.Equal(t, NormalizeEmail(expected), a.v.Email())
	return a
}

func (a *VerificationAssertion) AssertCodeNotEmpty(t *testing.T) *VerificationAssertion {
	t.Helper()
	assert.Len(t, a.v.Code(), CodeLength)
	return a
}

func (a *VerificationAssertion) AssertUsed(t *testing.T, expected bool) *VerificationAssertion {
	t.Helper()
	assert.Equal(t, expected, a.v.Used())
	return a
}

func (a *VerificationAssertion) AssertExpiresAt(t *testing.T, expected time.Time) *VerificationAssertion {
	t.Helper()
	assert.WithinDuration(t, expected, a.v.ExpiresAt(), 5*time.Second)
	return a
}

func (a *VerificationAssertion) AssertResendTimeout(t *testing.T, expected time.Time) *VerificationAssertion {
	t.Helper()
	assert.WithinDuration(t, expected, a.v.ResendTimeout(), 5*time.Second)
	return a
}
