package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/minhvo/profile-atlas/internal/domain/profile"
	"github.com/minhvo/profile-atlas/pkg/apperror"
)

type GetProfileUseCase struct {
	profileRepo profile.Repository
}

func NewGetProfileUseCase(repo profile.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: repo}
}

type GetProfileInput struct {
	ProfileID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.FindByID(ctx, input.ProfileID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", input.ProfileID.String())
		}
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}
