package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/ossm-org/orchid-accounts/internal/domain/user"
	"github.com/ossm-org/orchid-accounts/internal/domain/verification"
)

type UserDTO struct {
	ID        uuid.UUID
	Account   string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

func DomainToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        uuid.UUID(u.ID()),
		Account:   u.Account(),
		Email:     u.Email(),
		PassHash:  u.PassHash(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func UserToDomain(dto UserDTO) *user.User {
	return user.Rehydrate(user.RehydrateArgs{
		ID:        user.ID(dto.ID),
		Account:   dto.Account,
		Email:     dto.Email,
		PassHash:  dto.PassHash,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}

type VerificationDTO struct {
	Email         string
	Code          string
	IsUsed        bool
	ResendTimeout time.Time
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func DomainToVerificationDTO(v *verification.Verification) VerificationDTO {
	return VerificationDTO{
		Email:         v.Email(),
		Code:          v.Code(),
		IsUsed:        v.Used(),
		ResendTimeout: v.ResendTimeout(),
		ExpiresAt:     v.ExpiresAt(),
		CreatedAt:     v.CreatedAt(),
		UpdatedAt:     v.UpdatedAt(),
	}
}

func VerificationToDomain(dto VerificationDTO) *verification.Verification {
	return verification.Rehydrate(verification.RehydrateArgs{
		Email:         dto.Email,
		Code:          dto.Code,
		Used:          dto.IsUsed,
		ResendTimeout: dto.ResendTimeout,
		ExpiresAt:     dto.ExpiresAt,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}
