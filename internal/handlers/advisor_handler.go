package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jodijonatan/cashnote/internal/services"
)

// AdvisorHandler serves advisor questions and spending analyses.
type AdvisorHandler struct {
	advisorService services.AdvisorServicer
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(advisorService services.AdvisorServicer) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

// AdviceRequest carries the user's question. Emptiness is checked by the service.
type AdviceRequest struct {
	Question string `json:"question" binding:"max=1000"`
}

// Advise answers a financial question
// @Summary     Ask the advisor
// @Description Answers a question using the user's last 50 transactions and top expense categories
// @Tags        advisor
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AdviceRequest true "Question"
// @Success     200 {object} services.AdviceResult "Advice"
// @Failure     400 {object} ErrorResponse "Question is required"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     429 {object} ErrorResponse "Provider quota exceeded"
// @Failure     500 {object} ErrorResponse "Advisor not configured or failed"
// @Router      /ai/advisor [post]
func (h *AdvisorHandler) Advise(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	result, err := h.advisorService.Advise(c.Request.Context(), userID, req.Question)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Analyze comments on the last 30 days of spending
// @Summary     Analyze spending
// @Tags        advisor
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.AnalysisResult "Analysis"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     429 {object} ErrorResponse "Provider quota exceeded"
// @Failure     500 {object} ErrorResponse "Advisor not configured or failed"
// @Router      /ai/analyze [post]
func (h *AdvisorHandler) Analyze(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.advisorService.Analyze(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
