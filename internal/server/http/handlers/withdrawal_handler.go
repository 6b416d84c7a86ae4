package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub/internal/server/http/dto"
)

// WithdrawalHandler manages withdrawal endpoints for request owners.
type WithdrawalHandler struct {
	facade WithdrawalFacade
}

// NewWithdrawalHandler constructs WithdrawalHandler.
func NewWithdrawalHandler(facade WithdrawalFacade) *WithdrawalHandler {
	return &WithdrawalHandler{facade: facade}
}

// Submit handles POST /api/user/withdrawals.
func (h *WithdrawalHandler) Submit(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	request, err := h.facade.SubmitWithdrawal(c.Request.Context(), CurrentUserID(c), req.PaypalEmail, req.Points)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewWithdrawalResponse(request))
}

// List handles GET /api/user/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	withdrawals, err := h.facade.Withdrawals(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(withdrawals) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for i := range withdrawals {
		resp = append(resp, dto.NewWithdrawalResponse(&withdrawals[i]))
	}
	c.JSON(http.StatusOK, resp)
}
