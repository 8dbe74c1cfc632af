package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/jodijonatan/cashnote/internal/errors"
	"github.com/jodijonatan/cashnote/internal/models"
	"github.com/jodijonatan/cashnote/internal/services"
)

// TargetHandler handles savings-target requests.
type TargetHandler struct {
	targetService services.TargetServicer
	auditService  services.AuditServicer
}

// NewTargetHandler creates a new TargetHandler.
func NewTargetHandler(targetService services.TargetServicer, auditService services.AuditServicer) *TargetHandler {
	return &TargetHandler{targetService: targetService, auditService: auditService}
}

// CreateTargetRequest represents the request payload for creating a target
type CreateTargetRequest struct {
	Title        string          `json:"title" binding:"required,max=200"`
	TargetAmount decimal.Decimal `json:"targetAmount" swaggertype:"number" binding:"required,positive_decimal"`
	Category     string          `json:"category" binding:"max=100"`
	Deadline     OptionalDate    `json:"deadline" swaggertype:"string" example:"2024-12-31"`
}

// UpdateTargetRequest represents a partial target update. Omitted fields are
// unchanged; "deadline": null removes the deadline.
type UpdateTargetRequest struct {
	Title        *string              `json:"title" binding:"omitempty,max=200"`
	TargetAmount *decimal.Decimal     `json:"targetAmount" swaggertype:"number"`
	Category     *string              `json:"category" binding:"omitempty,max=100"`
	Deadline     OptionalDate         `json:"deadline" swaggertype:"string" example:"2024-12-31"`
	Status       *models.TargetStatus `json:"status" binding:"omitempty,target_status"`
}

// ProgressRequest represents a contribution towards a target
type ProgressRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"number" binding:"required,positive_decimal"`
}

// GetUserTargets lists the user's targets
// @Summary     List targets
// @Description List the user's savings targets with derived progress fields, newest first
// @Tags        targets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  services.TargetView "Targets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /targets [get]
func (h *TargetHandler) GetUserTargets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targets, err := h.targetService.GetUserTargets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, targets)
}

// CreateTarget creates a savings target
// @Summary     Create a target
// @Tags        targets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTargetRequest true "Target details"
// @Success     201 {object} services.TargetView "Target created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /targets [post]
func (h *TargetHandler) CreateTarget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	target, err := h.targetService.CreateTarget(userID, services.TargetInput{
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Category:     req.Category,
		Deadline:     req.Deadline.Value,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TARGET", "target", target.ID, c.ClientIP(),
		map[string]interface{}{"title": target.Title, "targetAmount": target.TargetAmount.String()})

	c.JSON(http.StatusCreated, target)
}

// UpdateTarget applies a partial update
// @Summary     Update a target
// @Tags        targets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Target ID"
// @Param       request body UpdateTargetRequest true "Fields to change"
// @Success     200 {object} services.TargetView "Target updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Router      /targets/{id} [put]
func (h *TargetHandler) UpdateTarget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	if req.TargetAmount != nil && !models.ValidAmount(*req.TargetAmount) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "targetAmount must be greater than zero with at most 2 decimal places"))
		return
	}

	upd := services.TargetUpdate{
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Category:     req.Category,
		Status:       req.Status,
	}
	if req.Deadline.Set {
		upd.Deadline = req.Deadline.Value
		upd.ClearDeadline = req.Deadline.Value == nil
	}

	target, err := h.targetService.UpdateTarget(userID, targetID, upd)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TARGET", "target", targetID, c.ClientIP(),
		map[string]interface{}{"title": target.Title, "status": target.Status})

	c.JSON(http.StatusOK, target)
}

// AddProgress adds a contribution to a target
// @Summary     Add progress
// @Description Atomically adds amount to the target's current amount
// @Tags        targets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Target ID"
// @Param       request body ProgressRequest true "Contribution"
// @Success     200 {object} services.TargetView "Target updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Router      /targets/{id}/progress [post]
func (h *TargetHandler) AddProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	target, err := h.targetService.AddProgress(userID, targetID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ADD_TARGET_PROGRESS", "target", targetID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount.String()})

	c.JSON(http.StatusOK, target)
}

// DeleteTarget deletes a target
// @Summary     Delete a target
// @Tags        targets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Target ID"
// @Success     200 {object} MessageResponse "Target deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Router      /targets/{id} [delete]
func (h *TargetHandler) DeleteTarget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.targetService.DeleteTarget(userID, targetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TARGET", "target", targetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Target deleted successfully"})
}

// GetSummary aggregates the user's targets
// @Summary     Target summary
// @Tags        targets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} analytics.TargetSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /targets/summary [get]
func (h *TargetHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.targetService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
