package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub/internal/domain/model"
	"github.com/rewardhub/rewardhub/internal/server/http/dto"
)

// AdminHandler manages the administrative review endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// List handles GET /api/admin/withdrawals.
func (h *AdminHandler) List(c *gin.Context) {
	requests, err := h.facade.AdminWithdrawals(c.Request.Context(), IsAdmin(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.AdminWithdrawalResponse, 0, len(requests))
	for i := range requests {
		resp = append(resp, dto.NewAdminWithdrawalResponse(&requests[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Resolve handles PATCH /api/admin/withdrawals/:id.
func (h *AdminHandler) Resolve(c *gin.Context) {
	var req dto.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	request, err := h.facade.ResolveWithdrawal(
		c.Request.Context(),
		IsAdmin(c),
		c.Param("id"),
		req.UserID,
		model.WithdrawalStatus(req.Status),
		req.RejectionReason,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWithdrawalResponse(request))
}
