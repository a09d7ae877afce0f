// Package i18nx names the request fields shared between validation and
// localized error reporting, so both sides agree on the wire spelling.
package i18nx

// Field names as they appear in request payloads. "passwd" is the legacy
// wire name for the password field.
const (
	FieldAccount  = "account"
	FieldEmail    = "email"
	FieldPassword = "passwd"
)
