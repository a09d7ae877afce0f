package user

import "github.com/ossm-org/orchid-accounts/pkg/errorx"

var (
	ErrAccountTaken = errorx.NewDuplicateEntryWithField("user", "account")
	ErrEmailTaken   = errorx.NewDuplicateEntryWithField("user", "email")
)
