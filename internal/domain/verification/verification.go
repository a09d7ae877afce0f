package verification

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"

	"github.com/ossm-org/orchid-accounts/pkg/errorx"
	"github.com/ossm-org/orchid-accounts/pkg/randcode"
)

const (
	CodeLength = 6

	// ResendTimeout is the per-recipient cooldown between code requests.
	ResendTimeout = 1 * time.Minute
	// ExpiresIn is how long an issued code stays redeemable.
	ExpiresIn = 10 * time.Minute
)

// NormalizeEmail canonicalizes a recipient address so lookups and uniqueness
// checks treat "User@Example.com " and "user@example.com" as the same key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Verification is the single outstanding code for a recipient. Issuing a new
// code replaces the previous one, so there is at most one Verification per
// email at any time.
type Verification struct {
	email         string
	code          string
	used          bool
	resendTimeout time.Time
	expiresAt     time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func New(email string) (*Verification, error) {
	const op = "verification.New"

	email = NormalizeEmail(email)
	err := validation.Validate(&email, validation.Required, is.Email)
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	code, err := randcode.GenerateAlphaNumericCode(CodeLength)
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}
	now := time.Now().UTC()

	return &Verification{
		email:         email,
		code:          code,
		used:          false,
		resendTimeout: now.Add(ResendTimeout),
		expiresAt:     now.Add(ExpiresIn),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type RehydrateArgs struct {
	Email         string
	Code          string
	Used          bool
	ResendTimeout time.Time
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func Rehydrate(args RehydrateArgs) *Verification {
	return &Verification{
		email:         args.Email,
		code:          args.Code,
		used:          args.Used,
		resendTimeout: args.ResendTimeout,
		expiresAt:     args.ExpiresAt,
		createdAt:     args.CreatedAt,
		updatedAt:     args.UpdatedAt,
	}
}

// Consume redeems the code. Every rejection returns the same
// ErrInvalidOrExpiredCode so callers cannot distinguish a wrong code from an
// expired or already used one.
func (v *Verification) Consume(code string) error {
	const op = "verification.Verification.Consume"

	if v == nil {
		return errorx.Wrap(ErrInvalidOrExpiredCode, op)
	}
	if v.used {
		return errorx.Wrap(ErrInvalidOrExpiredCode, op)
	}
	if time.Now().UTC().After(v.expiresAt) {
		return errorx.Wrap(ErrInvalidOrExpiredCode, op)
	}

	// Codes are issued uppercase; accept whatever casing the user typed.
	code = strings.ToUpper(strings.TrimSpace(code))
	if subtle.ConstantTimeCompare([]byte(v.code), []byte(code)) != 1 {
		return errorx.Wrap(ErrInvalidOrExpiredCode, op)
	}

	v.used = true
	v.updatedAt = time.Now().UTC()

	return nil
}

// CooldownActive reports whether a new code may not be issued yet for this
// recipient. A consumed code does not block reissue.
func (v *Verification) CooldownActive(now time.Time) bool {
	if v == nil || v.used {
		return false
	}

	return now.Before(v.resendTimeout)
}

// RetryAfter returns how long until the cooldown lifts, rounded up to whole
// seconds. Zero when no cooldown is active.
func (v *Verification) RetryAfter(now time.Time) time.Duration {
	if !v.CooldownActive(now) {
		return 0
	}

	d := v.resendTimeout.Sub(now)
	secs := d / time.Second
	if d%time.Second != 0 {
		secs++
	}

	return secs * time.Second
}

func (v *Verification) Email() string {
	if v == nil {
		return ""
	}

	return v.email
}

func (v *Verification) Code() string {
	if v == nil {
		return ""
	}

	return v.code
}

func (v *Verification) Used() bool {
	if v == nil {
		return false
	}

	return v.used
}

func (v *Verification) ResendTimeout() time.Time {
	if v == nil {
		return time.Time{}
	}

	return v.resendTimeout
}

func (v *Verification) ExpiresAt() time.Time {
	if v == nil {
		return time.Time{}
	}

	return v.expiresAt
}

func (v *Verification) CreatedAt() time.Time {
	if v == nil {
		return time.Time{}
	}

	return v.createdAt
}

func (v *Verification) UpdatedAt() time.Time {
	if v == nil {
		return time.Time{}
	}

	return v.updatedAt
}
