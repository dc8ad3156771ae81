package http

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	directoryUC "github.com/minhvo/profile-atlas/internal/application/usecase/directory"
	"github.com/minhvo/profile-atlas/pkg/apperror"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

// ProfileHandler is the presentation boundary: it translates HTTP traffic
// into directory commands and owns the map selection state. Clearing the
// selection when the selected profile is deleted is this layer's job, not the
// store's.
type ProfileHandler struct {
	addUseCase    *directoryUC.AddProfileUseCase
	updateUseCase *directoryUC.UpdateProfileUseCase
	deleteUseCase *directoryUC.DeleteProfileUseCase
	getUseCase    *directoryUC.GetProfileUseCase
	listUseCase   *directoryUC.ListProfilesUseCase
	logger        logger.Logger

	selMu      sync.Mutex
	selectedID *uuid.UUID
}

func NewProfileHandler(
	addUC *directoryUC.AddProfileUseCase,
	updateUC *directoryUC.UpdateProfileUseCase,
	deleteUC *directoryUC.DeleteProfileUseCase,
	getUC *directoryUC.GetProfileUseCase,
	listUC *directoryUC.ListProfilesUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		addUseCase:    addUC,
		updateUseCase: updateUC,
		deleteUseCase: deleteUC,
		getUseCase:    getUC,
		listUseCase:   listUC,
		logger:        log,
	}
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	input := directoryUC.ListProfilesInput{Criteria: CriteriaFromQuery(c)}
	output, err := h.listUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": ToProfileDTOs(output.Profiles)})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}
	output, err := h.getUseCase.Execute(c.Request.Context(), directoryUC.GetProfileInput{ProfileID: id})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) AddProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("Invalid request body", "invalid JSON body for profile create", err))
		return
	}

	output, err := h.addUseCase.Execute(c.Request.Context(), directoryUC.AddProfileInput{Form: req.ToFormInput()})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("Invalid request body", "invalid JSON body for profile update", err))
		return
	}

	input := directoryUC.UpdateProfileInput{ProfileID: id, Form: req.ToFormInput()}
	output, err := h.updateUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, ok := parseProfileID(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), directoryUC.DeleteProfileInput{ProfileID: id}); err != nil {
		c.Error(err)
		return
	}

	h.selMu.Lock()
	if h.selectedID != nil && *h.selectedID == id {
		h.selectedID = nil
		h.logger.Info("Cleared selection for deleted profile", zap.String("profile_id", id.String()))
	}
	h.selMu.Unlock()

	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) GetSelection(c *gin.Context) {
	h.selMu.Lock()
	selected := h.selectedID
	h.selMu.Unlock()

	if selected == nil {
		c.JSON(http.StatusOK, SelectionDTO{})
		return
	}

	output, err := h.getUseCase.Execute(c.Request.Context(), directoryUC.GetProfileInput{ProfileID: *selected})
	if err != nil {
		// Selection pointing at a vanished profile resets to none.
		h.selMu.Lock()
		if h.selectedID != nil && *h.selectedID == *selected {
			h.selectedID = nil
		}
		h.selMu.Unlock()
		c.JSON(http.StatusOK, SelectionDTO{})
		return
	}

	dto := ToProfileDTO(output.Profile)
	c.JSON(http.StatusOK, SelectionDTO{Profile: &dto})
}

func (h *ProfileHandler) SetSelection(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("Invalid request body", "invalid JSON body for selection", err))
		return
	}

	if req.ProfileID == nil {
		h.selMu.Lock()
		h.selectedID = nil
		h.selMu.Unlock()
		c.JSON(http.StatusOK, SelectionDTO{})
		return
	}

	output, err := h.getUseCase.Execute(c.Request.Context(), directoryUC.GetProfileInput{ProfileID: *req.ProfileID})
	if err != nil {
		c.Error(err)
		return
	}

	h.selMu.Lock()
	id := *req.ProfileID
	h.selectedID = &id
	h.selMu.Unlock()

	dto := ToProfileDTO(output.Profile)
	c.JSON(http.StatusOK, SelectionDTO{Profile: &dto})
}

func parseProfileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("Invalid profile id", "profile id must be a UUID", err))
		return uuid.Nil, false
	}
	return id, true
}
