package randcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAlphaNumericCode_Length(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 6, 12, 64} {
		code, err := GenerateAlphaNumericCode(n)
		require.NoError(t, err)
		assert.Len(t, code, n)
	}
}

func TestGenerateAlphaNumericCode_Alphabet(t *testing.T) {
	t.Parallel()

	for range 100 {
		code, err := GenerateAlphaNumericCode(6)
		require.NoError(t, err)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected rune %q in code %q", r, code)
		}
	}
}

func TestGenerateAlphaNumericCode_InvalidLength(t *testing.T) {
	t.Parallel()

	_, err := GenerateAlphaNumericCode(0)
	require.Error(t, err)

	_, err = GenerateAlphaNumericCode(-3)
	require.Error(t, err)
}

func TestGenerateAlphaNumericCode_NotConstant(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 20 {
		code, err := GenerateAlphaNumericCode(8)
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "codes should not repeat across generations")
}
