package verification

import (
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
)

// ErrInvalidOrExpiredCode is returned for every Consume rejection: wrong
// code, expired code, already used code, or no code on record. The single
// message keeps recipients unenumerable.
var ErrInvalidOrExpiredCode = errorx.NewVerificationRejected()
