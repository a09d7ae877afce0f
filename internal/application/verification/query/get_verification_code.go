package query

import (
	"context"

	"github.com/ossm-org/orchid-accounts/internal/domain/verification"
	"github.com/ossm-org/orchid-accounts/pkg/errorx"
)

type CodeGetter interface {
	GetByEmail(ctx context.Context, email string) (*verification.Verification, error)
}

// GetVerificationCodeHandler exposes the stored code for a recipient. Only
// the dev endpoint uses it; it must never be routed in prod.
type GetVerificationCodeHandler struct {
	getter CodeGetter
}

func NewGetVerificationCodeHandler(getter CodeGetter) *GetVerificationCodeHandler {
	return &GetVerificationCodeHandler{
		getter: getter,
	}
}

func (h *GetVerificationCodeHandler) Handle(ctx context.Context, email string) (string, error) {
	const op = "query.GetVerificationCodeHandler.Handle"

	v, err := h.getter.GetByEmail(ctx, verification.NormalizeEmail(email))
	if err != nil {
		return "", errorx.Wrap(err, op)
	}

	return v.Code(), nil
}
