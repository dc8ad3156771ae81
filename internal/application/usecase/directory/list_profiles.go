package directory

import (
	"context"

	"github.com/minhvo/profile-atlas/internal/domain/profile"
	"github.com/minhvo/profile-atlas/pkg/apperror"
)

type ListProfilesUseCase struct {
	profileRepo profile.Repository
}

func NewListProfilesUseCase(repo profile.Repository) *ListProfilesUseCase {
	return &ListProfilesUseCase{profileRepo: repo}
}

type ListProfilesInput struct {
	Criteria profile.FilterCriteria
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
}

func (uc *ListProfilesUseCase) Execute(ctx context.Context, input ListProfilesInput) (*ListProfilesOutput, error) {
	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	return &ListProfilesOutput{Profiles: profile.ApplyFilters(profiles, input.Criteria)}, nil
}
