package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhvo/profile-atlas/adapters/event"
	"github.com/minhvo/profile-atlas/internal/domain/profile"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

type DeleteProfileUseCase struct {
	profileRepo profile.Repository
	events      event.Publisher
	logger      logger.Logger
}

func NewDeleteProfileUseCase(repo profile.Repository, events event.Publisher, log logger.Logger) *DeleteProfileUseCase {
	return &DeleteProfileUseCase{
		profileRepo: repo,
		events:      events,
		logger:      log,
	}
}

type DeleteProfileInput struct {
	ProfileID uuid.UUID
}

// Execute removes the profile. A missing ID is an anomaly (the delete button
// only exists on rows that are displayed), so it is logged and swallowed
// rather than surfaced to the user.
func (uc *DeleteProfileUseCase) Execute(ctx context.Context, input DeleteProfileInput) error {

	ctx, span := tracer.Start(ctx, "DeleteProfile")
	defer span.End()

	if err := uc.profileRepo.Delete(ctx, input.ProfileID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			uc.logger.Warn("Delete requested for unknown profile", zap.String("profile_id", input.ProfileID.String()))
			return nil
		}
		span.RecordError(err)
		return err
	}

	go func() {
		err := uc.events.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType: event.ProfileEventTypeDeleted,
			ProfileID: input.ProfileID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'deleted' event", err, zap.String("profile_id", input.ProfileID.String()))
		}
	}()

	return nil
}
