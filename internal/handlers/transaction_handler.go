package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jodijonatan/cashnote/internal/analytics"
	apperrors "github.com/jodijonatan/cashnote/internal/errors"
	"github.com/jodijonatan/cashnote/internal/models"
	"github.com/jodijonatan/cashnote/internal/pagination"
	"github.com/jodijonatan/cashnote/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// TransactionRequest represents the request payload for creating or updating a transaction.
// Amount accepts a JSON number or a numeric string.
type TransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount" swaggertype:"number" binding:"required,positive_decimal"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Category    string                 `json:"category" binding:"required,max=100"`
	Description string                 `json:"description" binding:"max=500"`
	Date        OptionalDate           `json:"date" swaggertype:"string" example:"2024-01-31"`
}

func (r TransactionRequest) input() services.TransactionInput {
	return services.TransactionInput{
		Amount:      r.Amount,
		Type:        r.Type,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date.Value,
	}
}

// TransactionListQuery holds the optional list filters.
type TransactionListQuery struct {
	Category  string `form:"category"`
	Type      string `form:"type"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	pagination.PageRequest
}

// WindowQuery holds the reporting window of summary and chart requests.
type WindowQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// BreakdownQuery holds the trailing window of a category breakdown.
type BreakdownQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=366"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income or expense. A missing date defaults to now.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": req.Type, "amount": req.Amount.String(), "category": transaction.Category})

	c.JSON(http.StatusCreated, transaction)
}

// GetUserTransactions handles the retrieval of the authenticated user's transactions
// @Summary     List transactions
// @Description List the user's transactions, newest first, with optional filters. When page or pageSize is given the result is paginated and X-Total-Count carries the unpaginated count.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Filter by category"
// @Param       type      query string false "Filter by type (income, expense)"
// @Param       startDate query string false "Lower date bound (YYYY-MM-DD or RFC3339)"
// @Param       endDate   query string false "Upper date bound, inclusive (YYYY-MM-DD or RFC3339)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       pageSize  query int    false "Items per page (default 20, max 100)"
// @Success     200 {array}  models.Transaction "Transactions"
// @Header      200 {integer} X-Total-Count "Total matching transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q TransactionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter, err := parseTransactionFilter(q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page *pagination.PageRequest
	if q.Requested() {
		page = &q.PageRequest
	}

	transactions, total, err := h.transactionService.GetUserTransactions(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pagination.SetTotalHeader(c, total)
	c.JSON(http.StatusOK, transactions)
}

func parseTransactionFilter(q TransactionListQuery) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	from, err := analytics.ParseBound(q.StartDate, false)
	if err != nil {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid startDate: "+err.Error())
	}
	to, err := analytics.ParseBound(q.EndDate, true)
	if err != nil {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid endDate: "+err.Error())
	}
	filter.FromDate, filter.ToDate = from, to

	if v := strings.TrimSpace(q.Type); v != "" && v != "all" {
		txType := models.TransactionType(v)
		if !txType.Valid() {
			return filter, apperrors.ErrInvalidTransactionType
		}
		filter.Type = &txType
	}

	if v := strings.TrimSpace(q.Category); v != "" && v != "all" {
		filter.Category = v
	}

	return filter, nil
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id  path     string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction handles replacing a transaction's fields
// @Summary     Update a transaction
// @Description Replace amount, type, category and description. A missing date keeps the stored one.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRANSACTION", "transaction", transactionID, c.ClientIP(),
		map[string]interface{}{"type": req.Type, "amount": req.Amount.String(), "category": transaction.Category})

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles the deletion of a transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}

func bindWindow(c *gin.Context) (analytics.Window, error) {
	var q WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return analytics.Window{}, invalidInput(err)
	}
	w, err := analytics.ParseWindow(q.StartDate, q.EndDate, time.Now())
	if err != nil {
		return analytics.Window{}, invalidInput(err)
	}
	return w, nil
}

// GetSummary handles the period summary
// @Summary     Period summary
// @Description Income, expense and balance for the window, compared against the previous month. Without dates the current calendar month is used.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       startDate query string false "Window start (YYYY-MM-DD)"
// @Param       endDate   query string false "Window end, inclusive (YYYY-MM-DD)"
// @Success     200 {object} analytics.PeriodSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/summary [get]
func (h *TransactionHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	window, err := bindWindow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.transactionService.GetSummary(userID, window)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetChart handles the daily chart series
// @Summary     Daily chart series
// @Description One point per day that has transactions, ascending by date
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       startDate query string false "Window start (YYYY-MM-DD)"
// @Param       endDate   query string false "Window end, inclusive (YYYY-MM-DD)"
// @Success     200 {array}  analytics.ChartPoint "Chart points"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/chart [get]
func (h *TransactionHandler) GetChart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	window, err := bindWindow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.transactionService.GetChart(userID, window)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// GetCategoryBreakdown handles the expense breakdown by category
// @Summary     Expenses by category
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Trailing days (default 30)"
// @Success     200 {object} analytics.Breakdown "Breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/categories [get]
func (h *TransactionHandler) GetCategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q BreakdownQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	breakdown, err := h.transactionService.GetCategoryBreakdown(userID, q.Days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}
