package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub/internal/server/http/dto"
)

// RewardVerifier authenticates reward network postbacks.
type RewardVerifier interface {
	Verify(userID, txID string, points int64, signature string) error
}

// RewardsHandler receives signed credit postbacks from the reward network.
type RewardsHandler struct {
	facade   ProfileFacade
	verifier RewardVerifier
}

// NewRewardsHandler constructs RewardsHandler.
func NewRewardsHandler(facade ProfileFacade, verifier RewardVerifier) *RewardsHandler {
	return &RewardsHandler{facade: facade, verifier: verifier}
}

// Callback handles POST /api/rewards/callback.
func (h *RewardsHandler) Callback(c *gin.Context) {
	var req dto.RewardCallback
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.verifier.Verify(req.UserID, req.TransactionID, req.Points, req.Signature); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid signature"})
		return
	}

	profile, err := h.facade.CreditReward(c.Request.Context(), req.UserID, req.Email, req.Points)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RewardCallbackResponse{UserID: profile.ID, Points: profile.Points})
}
