package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/minhvo/profile-atlas/internal/domain/profile"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

func newTestRepo() profile.Repository {
	return NewMemoryProfileRepo(logger.NewNopLogger())
}

func newTestProfile(name string) *profile.Profile {
	return &profile.Profile{
		ID:          uuid.New(),
		Name:        name,
		Description: "A profile used in repository tests",
		Address:     "1 Main St, City",
		Interests:   []string{"Travel"},
		Location:    &profile.LatLng{Lat: 1, Lng: 2},
	}
}

func TestMemoryRepo_SaveAndList_InsertionOrder(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	first := newTestProfile("First")
	second := newTestProfile("Second")
	third := newTestProfile("Third")

	assert.NoError(t, repo.Save(ctx, first))
	assert.NoError(t, repo.Save(ctx, second))
	assert.NoError(t, repo.Save(ctx, third))

	listed, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, listed, 3)
	assert.Equal(t, "First", listed[0].Name)
	assert.Equal(t, "Second", listed[1].Name)
	assert.Equal(t, "Third", listed[2].Name)
}

func TestMemoryRepo_SaveRejectsDuplicateID(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	p := newTestProfile("Ana")
	assert.NoError(t, repo.Save(ctx, p))

	dup := newTestProfile("Ana Again")
	dup.ID = p.ID
	assert.ErrorIs(t, repo.Save(ctx, dup), profile.ErrDuplicateID)
}

func TestMemoryRepo_FindByID_ReturnsIsolatedCopy(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	p := newTestProfile("Ana")
	assert.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	assert.NoError(t, err)

	found.Name = "Mutated"
	found.Interests[0] = "Mutated"
	found.Location.Lat = 99

	again, err := repo.FindByID(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Ana", again.Name)
	assert.Equal(t, []string{"Travel"}, again.Interests)
	assert.Equal(t, float64(1), again.Location.Lat)
}

func TestMemoryRepo_FindByID_NotFound(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestMemoryRepo_Update_BumpsRevision(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	p := newTestProfile("Ana")
	assert.NoError(t, repo.Save(ctx, p))

	stored, _ := repo.FindByID(ctx, p.ID)
	stored.Name = "Ana Maria"
	assert.NoError(t, repo.Update(ctx, stored))
	assert.Equal(t, int64(1), stored.Revision)

	found, _ := repo.FindByID(ctx, p.ID)
	assert.Equal(t, "Ana Maria", found.Name)
	assert.Equal(t, int64(1), found.Revision)
}

func TestMemoryRepo_Update_RejectsStaleRevision(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	p := newTestProfile("Ana")
	assert.NoError(t, repo.Save(ctx, p))

	stale, _ := repo.FindByID(ctx, p.ID)
	fresh, _ := repo.FindByID(ctx, p.ID)

	fresh.Name = "Winner"
	assert.NoError(t, repo.Update(ctx, fresh))

	stale.Name = "Loser"
	assert.ErrorIs(t, repo.Update(ctx, stale), profile.ErrStaleProfile)

	found, _ := repo.FindByID(ctx, p.ID)
	assert.Equal(t, "Winner", found.Name)
}

func TestMemoryRepo_Update_NotFound(t *testing.T) {
	repo := newTestRepo()

	err := repo.Update(context.Background(), newTestProfile("Ghost"))
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestMemoryRepo_Delete(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	first := newTestProfile("First")
	second := newTestProfile("Second")
	third := newTestProfile("Third")
	assert.NoError(t, repo.Save(ctx, first))
	assert.NoError(t, repo.Save(ctx, second))
	assert.NoError(t, repo.Save(ctx, third))

	assert.NoError(t, repo.Delete(ctx, second.ID))

	_, err := repo.FindByID(ctx, second.ID)
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)

	// Remaining profiles keep their relative order and stay addressable.
	listed, _ := repo.List(ctx)
	assert.Len(t, listed, 2)
	assert.Equal(t, "First", listed[0].Name)
	assert.Equal(t, "Third", listed[1].Name)

	found, err := repo.FindByID(ctx, third.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Third", found.Name)
}

func TestMemoryRepo_Delete_NotFound(t *testing.T) {
	repo := newTestRepo()

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}
