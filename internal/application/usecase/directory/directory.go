// Package directory holds the application flows of the profile directory:
// add, update, delete, get and the filtered listing. Every mutating flow runs
// the same gate sequence: validate the raw input, resolve the address through
// the geocoder, then commit to the store.
package directory

import (
	"errors"

	"go.opentelemetry.io/otel"

	"github.com/minhvo/profile-atlas/internal/domain/geocode"
	"github.com/minhvo/profile-atlas/pkg/apperror"
)

var tracer = otel.Tracer("directory_usecase")

// ProfileFormInput is the raw admin-form payload shared by the add and edit
// flows. Interests stays untyped until validation so a scalar payload can be
// rejected with the proper field error.
type ProfileFormInput struct {
	Name        string
	Description string
	Address     string
	Photo       string
	Interests   any
}

func mapGeocodeError(err error) error {
	switch {
	case errors.Is(err, geocode.ErrServiceUnavailable):
		return apperror.NewUnavailable("Map service is unavailable. Please try again.", "geocoding provider is not available", err)
	case errors.Is(err, geocode.ErrAddressNotFound):
		return apperror.NewInvalidInput("Could not find the location. Please check the address.", "geocoding returned no usable candidate", err)
	default:
		return apperror.NewInternal("geocoding failed", err)
	}
}
