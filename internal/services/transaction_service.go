package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jodijonatan/cashnote/internal/analytics"
	apperrors "github.com/jodijonatan/cashnote/internal/errors"
	"github.com/jodijonatan/cashnote/internal/models"
	"github.com/jodijonatan/cashnote/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db, now: time.Now}
}

// amountMessage describes the money rule for field.
func amountMessage(field string) string {
	return field + " must be greater than zero with at most 2 decimal places"
}

func validateTransactionInput(in TransactionInput) error {
	if !models.ValidAmount(in.Amount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, amountMessage("amount"))
	}
	if !in.Type.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	if strings.TrimSpace(in.Category) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	return nil
}

// CreateTransaction records a new transaction for the user. A missing date
// defaults to now.
func (s *transactionService) CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}

	date := s.now()
	if in.Date != nil {
		date = *in.Date
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Amount:      in.Amount.Round(models.AmountScale),
		Type:        in.Type,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Date:        date.UTC(),
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetUserTransactions lists the user's transactions, newest first. When page
// is nil every matching row is returned.
func (s *transactionService) GetUserTransactions(userID string, filter TransactionFilter, page *pagination.PageRequest) ([]models.Transaction, int64, error) {
	base := applyTransactionFilters(s.db.Model(&models.Transaction{}).Where("user_id = ?", userID), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	q := base.Order("date DESC").Order("created_at DESC")
	if page != nil {
		page.Defaults()
		q = q.Scopes(pagination.Paginate(*page))
	}

	transactions := []models.Transaction{}
	if err := q.Find(&transactions).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, totalItems, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", f.FromDate.UTC())
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", f.ToDate.UTC())
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	return q
}

// GetTransactionByID returns the transaction if it belongs to the user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction replaces the writable fields of an owned transaction. A
// missing date keeps the stored one.
func (s *transactionService) UpdateTransaction(userID, transactionID string, in TransactionInput) (*models.Transaction, error) {
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}

	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"amount":      in.Amount.Round(models.AmountScale),
		"type":        in.Type,
		"category":    strings.TrimSpace(in.Category),
		"description": in.Description,
	}
	if in.Date != nil {
		updates["date"] = in.Date.UTC()
	}

	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction soft-deletes an owned transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func (s *transactionService) inWindow(userID string, w analytics.Window) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, w.Start.UTC(), w.End.UTC()).
		Order("date ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetSummary compares the window against the previous month's window.
func (s *transactionService) GetSummary(userID string, window analytics.Window) (*analytics.PeriodSummary, error) {
	prevWindow := analytics.PreviousWindow(window)

	current, err := s.inWindow(userID, window)
	if err != nil {
		return nil, err
	}
	previous, err := s.inWindow(userID, prevWindow)
	if err != nil {
		return nil, err
	}

	summary := analytics.Summarize(current, previous, window, prevWindow)
	return &summary, nil
}

// GetChart returns the per-day series for the window.
func (s *transactionService) GetChart(userID string, window analytics.Window) ([]analytics.ChartPoint, error) {
	transactions, err := s.inWindow(userID, window)
	if err != nil {
		return nil, err
	}
	return analytics.ChartSeries(transactions), nil
}

// GetCategoryBreakdown sums expenses per category over the trailing days.
func (s *transactionService) GetCategoryBreakdown(userID string, days int) (*analytics.Breakdown, error) {
	if days <= 0 {
		days = analytics.DefaultBreakdownDays
	}
	transactions, err := s.inWindow(userID, analytics.TrailingDays(s.now(), days))
	if err != nil {
		return nil, err
	}
	breakdown := analytics.CategoryBreakdown(transactions, days)
	return &breakdown, nil
}
