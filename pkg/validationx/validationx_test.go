package validationx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordFormatRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "Str0ng!pass", wantErr: false},
		{name: "too short", password: "S1!a", wantErr: true},
		{name: "no uppercase", password: "weak1pass!", wantErr: true},
		{name: "no lowercase", password: "WEAK1PASS!", wantErr: true},
		{name: "no digit", password: "Weakpass!!", wantErr: true},
		{name: "no special", password: "Weak1passs", wantErr: true},
		{name: "whitespace not allowed", password: "Str0ng! pass", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := PasswordFormat.Validate(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPasswordFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordFormatRule_NonString(t *testing.T) {
	t.Parallel()

	err := PasswordFormat.Validate(12345678)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPasswordFormat)
}

func TestIsAccount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{name: "letters only", account: "johndoe", wantErr: false},
		{name: "letters and digits", account: "john99", wantErr: false},
		{name: "underscore allowed", account: "john_doe", wantErr: false},
		{name: "empty left to Required", account: "", wantErr: false},
		{name: "leading digit", account: "9john", wantErr: true},
		{name: "leading underscore", account: "_john", wantErr: true},
		{name: "hyphen rejected", account: "john-doe", wantErr: true},
		{name: "space rejected", account: "john doe", wantErr: true},
		{name: "unicode rejected", account: "жан", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := IsAccount.Validate(tt.account)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
