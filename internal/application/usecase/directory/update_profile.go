package directory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhvo/profile-atlas/adapters/event"
	"github.com/minhvo/profile-atlas/internal/domain/geocode"
	"github.com/minhvo/profile-atlas/internal/domain/profile"
	"github.com/minhvo/profile-atlas/pkg/apperror"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

type UpdateProfileUseCase struct {
	profileRepo profile.Repository
	geocoder    geocode.Geocoder
	events      event.Publisher
	logger      logger.Logger
}

func NewUpdateProfileUseCase(repo profile.Repository, gc geocode.Geocoder, events event.Publisher, log logger.Logger) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		profileRepo: repo,
		geocoder:    gc,
		events:      events,
		logger:      log,
	}
}

type UpdateProfileInput struct {
	ProfileID uuid.UUID
	Form      ProfileFormInput
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {

	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()

	existing, err := uc.profileRepo.FindByID(ctx, input.ProfileID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			err = apperror.NewNotFound("profile", input.ProfileID.String())
		}
		span.RecordError(err)
		return nil, err
	}

	valRes := profile.ValidateInput(profile.ProfileInput{
		Name:        input.Form.Name,
		Description: input.Form.Description,
		Address:     input.Form.Address,
		Photo:       input.Form.Photo,
		Interests:   input.Form.Interests,
	})
	if !valRes.IsValid() {
		valErr := &profile.ValidationError{Result: valRes}
		err := apperror.NewInvalidInput(valErr.Error(), "profile validation failed", valErr)
		span.RecordError(err)
		return nil, err
	}

	interests, _ := profile.NormalizeInterests(input.Form.Interests)

	resolved, err := uc.geocoder.Geocode(ctx, input.Form.Address)
	if err != nil {
		err = mapGeocodeError(err)
		span.RecordError(err)
		return nil, err
	}

	// The update carries the revision read before the geocode lookup. If the
	// profile changed while the lookup was in flight, the store rejects the
	// commit instead of applying a stale resolution to the wrong state.
	updated := &profile.Profile{
		ID:          existing.ID,
		Name:        input.Form.Name,
		Description: input.Form.Description,
		Address:     resolved.Address,
		Photo:       input.Form.Photo,
		Interests:   interests,
		Location:    &resolved.Location,
		Revision:    existing.Revision,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := uc.profileRepo.Update(ctx, updated); err != nil {
		switch {
		case errors.Is(err, profile.ErrStaleProfile):
			err = apperror.NewConflict("profile", "profile changed while the address was being resolved, please retry")
		case errors.Is(err, profile.ErrProfileNotFound):
			err = apperror.NewNotFound("profile", input.ProfileID.String())
		default:
			err = apperror.NewInternal("failed to update profile", err)
		}
		span.RecordError(err)
		return nil, err
	}

	go func() {
		err := uc.events.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType: event.ProfileEventTypeUpdated,
			ProfileID: updated.ID,
			Address:   updated.Address,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'updated' event", err, zap.String("profile_id", updated.ID.String()))
		}
	}()

	return &UpdateProfileOutput{Profile: updated}, nil
}
