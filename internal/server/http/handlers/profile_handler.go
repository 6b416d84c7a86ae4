package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub/internal/server/http/dto"
)

// ProfileHandler manages profile endpoints.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Get handles GET /api/user/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c), CurrentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

// UpdateDemographics handles PUT /api/user/demographics.
func (h *ProfileHandler) UpdateDemographics(c *gin.Context) {
	var req dto.DemographicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	profile, err := h.facade.UpdateDemographics(c.Request.Context(), CurrentUserID(c), req.CountryCode, req.PostalCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}
