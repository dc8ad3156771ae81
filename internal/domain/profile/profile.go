package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// LatLng is a WGS84 coordinate pair produced by the geocoding step.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Profile is a directory entry. Address holds free text until geocoding
// replaces it with the provider's formatted address; Location is nil for
// profiles that have never been resolved.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Photo       string    `json:"photo,omitempty"`
	Interests   []string  `json:"interests"`
	Location    *LatLng   `json:"location,omitempty"`
	Revision    int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrDuplicateID     = errors.New("profile id already exists")
	ErrStaleProfile    = errors.New("profile changed since it was read")
)

type Repository interface {
	Save(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
}
