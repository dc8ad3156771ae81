package geocode

import (
	"context"
	"errors"

	"github.com/minhvo/profile-atlas/internal/domain/profile"
)

var (
	// ErrServiceUnavailable means the provider is not configured or not
	// reachable at all; callers must not retry without operator action.
	ErrServiceUnavailable = errors.New("geocoding service unavailable")

	// ErrAddressNotFound means the provider answered but produced no usable
	// candidate; recoverable by editing the address.
	ErrAddressNotFound = errors.New("address could not be resolved")
)

// Result is a resolved address: the provider's formatted string plus the
// coordinates of its first candidate.
type Result struct {
	Address  string         `json:"address"`
	Location profile.LatLng `json:"location"`
}

// Geocoder resolves free-text addresses. Implementations take exactly one
// candidate per lookup; disambiguation of multiple matches is not offered.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Result, error)
}
