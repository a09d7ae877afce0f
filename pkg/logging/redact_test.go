package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{
			name:     "valid - normal ascii",
			email:    "valid@gmail.com",
			expected: "va****@gmail.com",
		},
		{
			name:     "empty",
			email:    "",
			expected: "",
		},
		{
			name:     "too short local - 1 rune",
			email:    "a@b.c",
			expected: "a@b.c", // Not enough characters to redact
		},
		{
			name:     "too short local - 2 runes",
			email:    "ab@b.c",
			expected: "ab@b.c", // Not enough characters to redact
		},
		{
			name:     "exact threshold - 3 runes",
			email:    "abc@domain.com",
			expected: "ab****@domain.com",
		},
		{
			name:     "unicode local (cyrillic)",
			email:    "абвгд@пример.рф",
			expected: "аб****@пример.рф",
		},
		{
			name:     "leading and trailing whitespace",
			email:    "   elise@example.com   ",
			expected: "el****@example.com",
		},
		{
			name:     "malformed - no at",
			email:    "nonsense",
			expected: "nonsense", // returned unchanged
		},
		{
			name:     "malformed - at at start",
			email:    "@example.com",
			expected: "@example.com", // returned unchanged
		},
		{
			name:     "malformed - at at end",
			email:    "local@",
			expected: "local@", // returned unchanged
		},
		{
			name:     "multiple ats - redacts up to first at",
			email:    "first@second@domain.com",
			expected: "fi****@second@domain.com",
		},
		{
			name:     "preserve domain - deep subdomain",
			email:    "abcdef@sub.example.co.uk",
			expected: "ab****@sub.example.co.uk",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := RedactEmail(tc.email)
			assert.Equal(t, tc.expected, result, "Redacted email should match expected value")
		})
	}
}

func TestRedactEmail_PreservesDomainSuffix(t *testing.T) {
	t.Parallel()

	in := "abcdef@sub.example.co.uk"
	out := RedactEmail(in)

	// Whatever masking happens to the local part, the domain must be intact
	assert.True(t, strings.HasSuffix(out, "@sub.example.co.uk"))
}

func TestRedactAccount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		account  string
		expected string
	}{
		{
			name:     "empty account",
			account:  "",
			expected: "",
		},
		{
			name:     "1 rune - unchanged",
			account:  "a",
			expected: "a",
		},
		{
			name:     "2 runes - unchanged",
			account:  "ab",
			expected: "ab",
		},
		{
			name:     "3 runes - threshold",
			account:  "abc",
			expected: "ab****",
		},
		{
			name:     "normal ascii account",
			account:  "john_doe",
			expected: "jo****",
		},
		{
			name:     "long account",
			account:  "verylongaccount123",
			expected: "ve****",
		},
		{
			name:     "whitespace handling",
			account:  "  user  ",
			expected: "us****",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := RedactAccount(tc.account)
			assert.Equal(t, tc.expected, result, "Redacted account should match expected value")
		})
	}
}

func TestRedactKeepPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag      string
		input    string
		keep     int
		expected string
	}{
		{"t1", "", 3, ""},
		{"t2", "a", 3, "a"},
		{"t3", "ab", 3, "ab"},
		{"t4", "abc", 3, "abc"},
		{"t5", "abcd", 3, "abc****"},
		{"t6", "abcdefg", 4, "abcd****"},
		{"t7", "  spaced  ", 3, "spa****"},
		{"t8", "пользователь", 3, "пол****"},
		{"t9", "short", 10, "short"},
		{"t10", "exactlyten", 10, "exactlyten"},
		{"t11", "elevenchars", 10, "elevenchar****"},
	}

	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			t.Parallel()
			result := RedactKeepPrefix(tc.input, tc.keep)
			assert.Equal(t, tc.expected, result, "Redacted string should match expected value")
		})
	}
}
