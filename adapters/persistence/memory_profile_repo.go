package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhvo/profile-atlas/internal/domain/profile"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

// memoryProfileRepo holds the whole directory in process memory. Insertion
// order is the default list order; nothing survives a restart.
type memoryProfileRepo struct {
	mu       sync.RWMutex
	profiles []*profile.Profile
	index    map[uuid.UUID]int
	logger   logger.Logger
}

func NewMemoryProfileRepo(log logger.Logger) profile.Repository {
	return &memoryProfileRepo{
		index:  make(map[uuid.UUID]int),
		logger: log,
	}
}

func (r *memoryProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[p.ID]; exists {
		return profile.ErrDuplicateID
	}

	r.index[p.ID] = len(r.profiles)
	r.profiles = append(r.profiles, cloneProfile(p))
	r.logger.Info("Profile stored", zap.String("profile_id", p.ID.String()), zap.Int("total", len(r.profiles)))
	return nil
}

// Update replaces the stored profile in place. A caller whose revision lags
// the stored one raced with a newer write (for example a geocode lookup that
// settled after the profile changed) and gets ErrStaleProfile instead of
// clobbering it.
func (r *memoryProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, exists := r.index[p.ID]
	if !exists {
		return profile.ErrProfileNotFound
	}

	current := r.profiles[idx]
	if p.Revision != current.Revision {
		return profile.ErrStaleProfile
	}

	updated := cloneProfile(p)
	updated.Revision = current.Revision + 1
	updated.CreatedAt = current.CreatedAt
	r.profiles[idx] = updated

	p.Revision = updated.Revision
	return nil
}

func (r *memoryProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, exists := r.index[id]
	if !exists {
		return profile.ErrProfileNotFound
	}

	r.profiles = append(r.profiles[:idx], r.profiles[idx+1:]...)
	delete(r.index, id)
	for i := idx; i < len(r.profiles); i++ {
		r.index[r.profiles[i].ID] = i
	}
	return nil
}

func (r *memoryProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, exists := r.index[id]
	if !exists {
		return nil, profile.ErrProfileNotFound
	}
	return cloneProfile(r.profiles[idx]), nil
}

func (r *memoryProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*profile.Profile, len(r.profiles))
	for i, p := range r.profiles {
		out[i] = cloneProfile(p)
	}
	return out, nil
}

// cloneProfile guards the store against aliasing: callers never see the
// stored value and the store never keeps a caller's slice or pointer.
func cloneProfile(p *profile.Profile) *profile.Profile {
	c := *p
	if p.Interests != nil {
		c.Interests = append([]string(nil), p.Interests...)
	}
	if p.Location != nil {
		loc := *p.Location
		c.Location = &loc
	}
	return &c
}
