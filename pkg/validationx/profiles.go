package validationx

import (
	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
)

var (
	EmailRules = []validation.Rule{
		validation.Required,
		is.Email,
		validation.Length(5, 255),
	}

	AccountRules = []validation.Rule{
		validation.Required,
		validation.Length(3, 30),
		IsAccount,
	}

	PasswordRules = []validation.Rule{
		validation.Required,
		validation.Length(8, 128),
		PasswordFormat,
	}

	VerificationCodeRules = []validation.Rule{
		validation.Required,
		validation.Length(6, 6),
		is.Alphanumeric,
	}
)
