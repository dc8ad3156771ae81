package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/minhvo/profile-atlas/adapters/event"
	"github.com/minhvo/profile-atlas/adapters/persistence"
	directoryUC "github.com/minhvo/profile-atlas/internal/application/usecase/directory"
	"github.com/minhvo/profile-atlas/internal/domain/geocode"
	"github.com/minhvo/profile-atlas/internal/domain/profile"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

type mapGeocoder struct {
	results map[string]*geocode.Result
	err     error
}

func (g *mapGeocoder) Geocode(ctx context.Context, address string) (*geocode.Result, error) {
	if g.err != nil {
		return nil, g.err
	}
	if r, ok := g.results[address]; ok {
		return r, nil
	}
	return nil, geocode.ErrAddressNotFound
}

type DirectoryE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	geocoder *mapGeocoder
}

func (s *DirectoryE2ETestSuite) SetupTest() {
	appLogger := logger.NewNopLogger()
	repo := persistence.NewMemoryProfileRepo(appLogger)

	s.geocoder = &mapGeocoder{results: map[string]*geocode.Result{
		"1 Main St": {Address: "1 Main St, City", Location: profile.LatLng{Lat: 1, Lng: 2}},
		"2 Main St": {Address: "2 Main St, City", Location: profile.LatLng{Lat: 3, Lng: 4}},
		"3 Main St": {Address: "3 Main St, City", Location: profile.LatLng{Lat: 5, Lng: 6}},
	}}

	events := event.NoopPublisher{}
	handler := NewProfileHandler(
		directoryUC.NewAddProfileUseCase(repo, s.geocoder, events, appLogger),
		directoryUC.NewUpdateProfileUseCase(repo, s.geocoder, events, appLogger),
		directoryUC.NewDeleteProfileUseCase(repo, events, appLogger),
		directoryUC.NewGetProfileUseCase(repo),
		directoryUC.NewListProfilesUseCase(repo),
		appLogger,
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(appLogger))
	RegisterRoutes(router, handler)
	s.Router = router
}

func TestDirectoryE2E(t *testing.T) {
	suite.Run(t, new(DirectoryE2ETestSuite))
}

func (s *DirectoryE2ETestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *DirectoryE2ETestSuite) addProfile(name, description, address string, interests any) ProfileDTO {
	rr := s.perform(http.MethodPost, "/api/admin/profiles", gin.H{
		"name":        name,
		"description": description,
		"address":     address,
		"interests":   interests,
	})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var dto ProfileDTO
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	return dto
}

func (s *DirectoryE2ETestSuite) listProfiles(query string) []ProfileDTO {
	rr := s.perform(http.MethodGet, "/api/profiles"+query, nil)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Profiles []ProfileDTO `json:"profiles"`
	}
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Profiles
}

func (s *DirectoryE2ETestSuite) Test_AddProfile_Flow() {
	dto := s.addProfile("Ana", "Loves hiking trips", "1 Main St", []string{"Travel", "Hiking"})

	// The committed profile carries the geocoder's canonical address and
	// coordinates, not the raw form input.
	assert.Equal(s.T(), "1 Main St, City", dto.Address)
	assert.NotNil(s.T(), dto.Location)
	assert.Equal(s.T(), float64(1), dto.Location.Lat)
	assert.Equal(s.T(), float64(2), dto.Location.Lng)
	assert.NotEmpty(s.T(), dto.ID)

	profiles := s.listProfiles("")
	assert.Len(s.T(), profiles, 1)
	assert.Equal(s.T(), dto.ID, profiles[0].ID)
}

func (s *DirectoryE2ETestSuite) Test_AddProfile_ValidationErrors() {
	rr := s.perform(http.MethodPost, "/api/admin/profiles", gin.H{
		"name":        "A",
		"description": "short",
		"address":     "1 Main St",
	})

	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)

	var resp struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(s.T(), "Name must be at least 2 characters long", resp.Message)
	assert.Equal(s.T(), "Name must be at least 2 characters long", resp.Errors["name"])
	assert.Equal(s.T(), "Description must be at least 10 characters long", resp.Errors["description"])

	assert.Empty(s.T(), s.listProfiles(""))
}

func (s *DirectoryE2ETestSuite) Test_AddProfile_InterestsAsCommaString() {
	dto := s.addProfile("Ana", "Loves hiking trips", "1 Main St", "Travel, Hiking ,")

	assert.Equal(s.T(), []string{"Travel", "Hiking"}, dto.Interests)
}

func (s *DirectoryE2ETestSuite) Test_AddProfile_InterestsWrongType() {
	rr := s.perform(http.MethodPost, "/api/admin/profiles", gin.H{
		"name":        "Ana",
		"description": "Loves hiking trips",
		"address":     "1 Main St",
		"interests":   42,
	})

	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "Interests must be an array")
}

func (s *DirectoryE2ETestSuite) Test_AddProfile_AddressNotFound() {
	rr := s.perform(http.MethodPost, "/api/admin/profiles", gin.H{
		"name":        "Ana",
		"description": "Loves hiking trips",
		"address":     "unknown place",
	})

	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "Could not find the location. Please check the address.")
}

func (s *DirectoryE2ETestSuite) Test_AddProfile_ServiceUnavailable() {
	s.geocoder.err = geocode.ErrServiceUnavailable

	rr := s.perform(http.MethodPost, "/api/admin/profiles", gin.H{
		"name":        "Ana",
		"description": "Loves hiking trips",
		"address":     "1 Main St",
	})

	assert.Equal(s.T(), http.StatusServiceUnavailable, rr.Code)
}

func (s *DirectoryE2ETestSuite) Test_FilterAndSort() {
	s.addProfile("Bob", "Chess and long walks", "1 Main St", []string{"Chess"})
	s.addProfile("alice", "Planning the next trip", "2 Main St", []string{"Travel"})
	s.addProfile("Carol", "Paints in the park", "3 Main St", []string{"Art"})

	byInterest := s.listProfiles("?interests=Travel")
	s.Require().Len(byInterest, 1)
	assert.Equal(s.T(), "alice", byInterest[0].Name)

	bySearch := s.listProfiles("?search=chess")
	s.Require().Len(bySearch, 1)
	assert.Equal(s.T(), "Bob", bySearch[0].Name)

	byLocation := s.listProfiles("?location=2+main")
	s.Require().Len(byLocation, 1)
	assert.Equal(s.T(), "alice", byLocation[0].Name)

	sorted := s.listProfiles("?sort=name")
	s.Require().Len(sorted, 3)
	assert.Equal(s.T(), "alice", sorted[0].Name)
	assert.Equal(s.T(), "Bob", sorted[1].Name)
	assert.Equal(s.T(), "Carol", sorted[2].Name)
}

func (s *DirectoryE2ETestSuite) Test_UpdateProfile() {
	created := s.addProfile("Ana", "Loves hiking trips", "1 Main St", []string{"Travel"})

	rr := s.perform(http.MethodPut, "/api/admin/profiles/"+created.ID, gin.H{
		"name":        "Ana Maria",
		"description": "Loves hiking trips",
		"address":     "2 Main St",
	})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var dto ProfileDTO
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.Equal(s.T(), created.ID, dto.ID)
	assert.Equal(s.T(), "Ana Maria", dto.Name)
	assert.Equal(s.T(), "2 Main St, City", dto.Address)
}

func (s *DirectoryE2ETestSuite) Test_UpdateProfile_UnknownID() {
	rr := s.perform(http.MethodPut, "/api/admin/profiles/3f9c52a4-92d3-4571-a6ba-d2fc2573e0d4", gin.H{
		"name":        "Ghost",
		"description": "Nobody lives here",
		"address":     "1 Main St",
	})

	assert.Equal(s.T(), http.StatusNotFound, rr.Code)
}

func (s *DirectoryE2ETestSuite) Test_SelectionLifecycle() {
	created := s.addProfile("Ana", "Loves hiking trips", "1 Main St", []string{"Travel"})

	// Nothing selected at session start.
	rr := s.perform(http.MethodGet, "/api/selection", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var sel SelectionDTO
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &sel))
	assert.Nil(s.T(), sel.Profile)

	rr = s.perform(http.MethodPut, "/api/selection", gin.H{"profile_id": created.ID})
	s.Require().Equal(http.StatusOK, rr.Code)
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &sel))
	s.Require().NotNil(sel.Profile)
	assert.Equal(s.T(), created.ID, sel.Profile.ID)

	// Deleting the selected profile clears the selection.
	rr = s.perform(http.MethodDelete, "/api/admin/profiles/"+created.ID, nil)
	s.Require().Equal(http.StatusNoContent, rr.Code)

	rr = s.perform(http.MethodGet, "/api/selection", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	sel = SelectionDTO{}
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &sel))
	assert.Nil(s.T(), sel.Profile)

	assert.Empty(s.T(), s.listProfiles(""))
}

func (s *DirectoryE2ETestSuite) Test_Selection_UnknownProfile() {
	rr := s.perform(http.MethodPut, "/api/selection", gin.H{"profile_id": "3f9c52a4-92d3-4571-a6ba-d2fc2573e0d4"})

	assert.Equal(s.T(), http.StatusNotFound, rr.Code)
}

func (s *DirectoryE2ETestSuite) Test_DeleteProfile_UnknownIDIsNoOp() {
	rr := s.perform(http.MethodDelete, "/api/admin/profiles/3f9c52a4-92d3-4571-a6ba-d2fc2573e0d4", nil)

	assert.Equal(s.T(), http.StatusNoContent, rr.Code)
}
