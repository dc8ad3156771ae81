package http

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	directoryUC "github.com/minhvo/profile-atlas/internal/application/usecase/directory"
	"github.com/minhvo/profile-atlas/internal/domain/profile"
)

// ProfileRequest is the add/edit form payload. Interests is kept raw because
// the admin form historically sent either a JSON array of tags or one
// comma-separated string; anything else must reach the validator as-is so it
// can answer with the wrong_type field error.
type ProfileRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	Photo       string          `json:"photo"`
	Interests   json.RawMessage `json:"interests"`
}

func (r *ProfileRequest) ToFormInput() directoryUC.ProfileFormInput {
	var interests any
	if len(r.Interests) > 0 && string(r.Interests) != "null" {
		var v any
		if err := json.Unmarshal(r.Interests, &v); err == nil {
			if s, ok := v.(string); ok {
				interests = profile.ParseInterests(s)
			} else {
				interests = v
			}
		}
	}
	return directoryUC.ProfileFormInput{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Photo:       r.Photo,
		Interests:   interests,
	}
}

type LatLngDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ProfileDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Photo       string     `json:"photo,omitempty"`
	Interests   []string   `json:"interests"`
	Location    *LatLngDTO `json:"location,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Address:     p.Address,
		Photo:       p.Photo,
		Interests:   p.Interests,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if dto.Interests == nil {
		dto.Interests = []string{}
	}
	if p.Location != nil {
		dto.Location = &LatLngDTO{Lat: p.Location.Lat, Lng: p.Location.Lng}
	}
	return dto
}

func ToProfileDTOs(profiles []*profile.Profile) []ProfileDTO {
	dtos := make([]ProfileDTO, len(profiles))
	for i, p := range profiles {
		dtos[i] = ToProfileDTO(p)
	}
	return dtos
}

type SelectionRequest struct {
	ProfileID *uuid.UUID `json:"profile_id"`
}

type SelectionDTO struct {
	Profile *ProfileDTO `json:"profile"`
}

// CriteriaFromQuery reads filter criteria from the list query string.
// Interests may repeat (?interests=a&interests=b) or arrive as one
// comma-separated value.
func CriteriaFromQuery(c *gin.Context) profile.FilterCriteria {
	interests := c.QueryArray("interests")
	if len(interests) == 1 && strings.Contains(interests[0], ",") {
		interests = profile.ParseInterests(interests[0])
	}
	return profile.FilterCriteria{
		SearchText:        c.Query("search"),
		SelectedInterests: interests,
		Location:          c.Query("location"),
		SortBy:            profile.SortKey(c.Query("sort")),
	}
}
