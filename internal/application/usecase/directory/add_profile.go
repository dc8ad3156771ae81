package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/minhvo/profile-atlas/adapters/event"
	"github.com/minhvo/profile-atlas/internal/domain/geocode"
	"github.com/minhvo/profile-atlas/internal/domain/profile"
	"github.com/minhvo/profile-atlas/pkg/apperror"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

type AddProfileUseCase struct {
	profileRepo profile.Repository
	geocoder    geocode.Geocoder
	events      event.Publisher
	logger      logger.Logger
}

func NewAddProfileUseCase(repo profile.Repository, gc geocode.Geocoder, events event.Publisher, log logger.Logger) *AddProfileUseCase {
	return &AddProfileUseCase{
		profileRepo: repo,
		geocoder:    gc,
		events:      events,
		logger:      log,
	}
}

type AddProfileInput struct {
	Form ProfileFormInput
}

type AddProfileOutput struct {
	Profile *profile.Profile
}

func (uc *AddProfileUseCase) Execute(ctx context.Context, input AddProfileInput) (*AddProfileOutput, error) {

	ctx, span := tracer.Start(ctx, "AddProfile")
	defer span.End()

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

	now := time.Now().UTC()
	newProfile := &profile.Profile{
		ID:          uuid.New(),
		Name:        input.Form.Name,
		Description: input.Form.Description,
		Address:     resolved.Address,
		Photo:       input.Form.Photo,
		Interests:   interests,
		Location:    &resolved.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.profileRepo.Save(ctx, newProfile); err != nil {
		err = apperror.NewInternal("failed to store profile", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("profile_id", newProfile.ID.String()))

	go func() {
		err := uc.events.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType: event.ProfileEventTypeCreated,
			ProfileID: newProfile.ID,
			Address:   newProfile.Address,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'created' event", err, zap.String("profile_id", newProfile.ID.String()))
		}
	}()

	return &AddProfileOutput{Profile: newProfile}, nil
}
