package logging

import (
	"strings"
	"unicode/utf8"
)

// RedactEmail shows first 2 runes of the local part and replaces the rest
// with "****", keeping the domain intact. It leaves the input unchanged if:
// - empty
// - malformed (no '@' or '@' at ends)
// - local part has fewer than 3 runes (too short to meaningfully redact)
func RedactEmail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		// malformed: no '@', or '@' at start/end
		return s
	}

	local, domain := s[:at], s[at+1:]
	if utf8.RuneCountInString(local) < 3 {
		// not enough characters to redact
		return s
	}

	return runePrefix(local, 2) + "****@" + domain
}

// RedactAccount shows the first 2 runes of an account name and masks the
// rest. Inputs shorter than 3 runes are returned unchanged.
func RedactAccount(s string) string {
	return RedactKeepPrefix(s, 2)
}

// RedactKeepPrefix keeps the first keep runes and replaces the rest with
// "****". Inputs with keep or fewer runes are returned unchanged.
func RedactKeepPrefix(s string, keep int) string {
	s = strings.TrimSpace(s)
	if s == "" || keep < 0 {
		return s
	}

	if utf8.RuneCountInString(s) <= keep {
		return s
	}

	return runePrefix(s, keep) + "****"
}

func runePrefix(s string, n int) string {
	offset := 0
	for count := 0; count < n && offset < len(s); count++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return s[:offset]
}
