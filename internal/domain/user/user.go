package user

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ossm-org/orchid-accounts/internal/domain/event"
	"github.com/ossm-org/orchid-accounts/internal/domain/verification"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
	"github.com/ossm-org/orchid-accounts/pkg/i18nx"
	"github.com/ossm-org/orchid-accounts/pkg/validationx"
)

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uuid.UUID(id).String())
}

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	uid, err := uuid.Parse(s)
	if err != nil {
		return err
	}

	*id = ID(uid)
	return nil
}

type User struct {
	event.Recorder
	id        ID
	account   string
	email     string
	passHash  []byte
	createdAt time.Time
	updatedAt time.Time
}

type NewUserArgs struct {
	Account  string
	Email    string
	PassHash []byte
}

// NewUser builds a registered user and records the UserRegistered event.
// Password strength is the caller's job via ValidateRegistration before
// hashing; NewUser still refuses structurally unusable input.
func NewUser(args NewUserArgs) (*User, error) {
	const op = "user.NewUser"

	if err := validation.Validate(&args.Account, validationx.AccountRules...); err != nil {
		return nil, errorx.Wrap(err, op)
	}
	if err := validation.Validate(&args.Email, validationx.EmailRules...); err != nil {
		return nil, errorx.Wrap(err, op)
	}
	if len(args.PassHash) == 0 {
		return nil, errorx.Wrap(errors.New("pass hash is empty"), op)
	}

	now := time.Now().UTC()
	u := &User{
		id:        NewID(),
		account:   strings.TrimSpace(args.Account),
		email:     verification.NormalizeEmail(args.Email),
		passHash:  args.PassHash,
		createdAt: now,
		updatedAt: now,
	}

	u.AddEvent(&UserRegistered{
		Header:  event.NewEventHeader(),
		UserID:  u.id,
		Account: u.account,
		Email:   u.email,
	})

	return u, nil
}

type RehydrateArgs struct {
	ID        ID
	Account   string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

func Rehydrate(args RehydrateArgs) *User {
	return &User{
		id:        args.ID,
		account:   args.Account,
		email:     args.Email,
		passHash:  args.PassHash,
		createdAt: args.CreatedAt,
		updatedAt: args.UpdatedAt,
	}
}

// ValidateRegistration checks registration input field by field in a fixed
// order: account, then email, then password. Only the first failing field is
// reported.
func ValidateRegistration(account, email, password string) error {
	if err := validation.Validate(&account, validationx.AccountRules...); err != nil {
		return validation.Errors{i18nx.FieldAccount: err}
	}
	if err := validation.Validate(&email, validationx.EmailRules...); err != nil {
		return validation.Errors{i18nx.FieldEmail: err}
	}
	if err := validation.Validate(&password, validationx.PasswordRules...); err != nil {
		return validation.Errors{i18nx.FieldPassword: err}
	}

	return nil
}

func (u *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(u.passHash, []byte(password))
}

func (u *User) ID() ID {
	if u == nil {
		return ID{}
	}

	return u.id
}

func (u *User) Account() string {
	if u == nil {
		return ""
	}

	return u.account
}

func (u *User) Email() string {
	if u == nil {
		return ""
	}

	return u.email
}

func (u *User) PassHash() []byte {
	if u == nil {
		return nil
	}

	return u.passHash
}

func (u *User) CreatedAt() time.Time {
	if u == nil {
		return time.Time{}
	}

	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	if u == nil {
		return time.Time{}
	}

	return u.updatedAt
}
