package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jodijonatan/cashnote/internal/analytics"
	apperrors "github.com/jodijonatan/cashnote/internal/errors"
	"github.com/jodijonatan/cashnote/internal/models"
)

// targetService handles savings-target business logic.
type targetService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTargetService creates a new TargetServicer.
func NewTargetService(db *gorm.DB) TargetServicer {
	return &targetService{db: db, now: time.Now}
}

func (s *targetService) view(t models.FinancialTarget) TargetView {
	return TargetView{FinancialTarget: t, ProgressInfo: analytics.TargetProgress(t, s.now())}
}

// CreateTarget creates a new active target with no progress.
func (s *targetService) CreateTarget(userID string, in TargetInput) (*TargetView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if !models.ValidAmount(in.TargetAmount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, amountMessage("target amount"))
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.DefaultTargetCategory
	}

	target := models.FinancialTarget{
		UserID:        userID,
		Title:         title,
		TargetAmount:  in.TargetAmount.Round(models.AmountScale),
		CurrentAmount: decimal.Zero,
		Category:      category,
		Deadline:      utcPtr(in.Deadline),
		Status:        models.TargetStatusActive,
	}
	if err := s.db.Create(&target).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	v := s.view(target)
	return &v, nil
}

// GetUserTargets lists the user's targets, newest first.
func (s *targetService) GetUserTargets(userID string) ([]TargetView, error) {
	var targets []models.FinancialTarget
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&targets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]TargetView, 0, len(targets))
	for _, t := range targets {
		views = append(views, s.view(t))
	}
	return views, nil
}

func (s *targetService) find(userID, targetID string) (*models.FinancialTarget, error) {
	var target models.FinancialTarget
	if err := s.db.Where("id = ? AND user_id = ?", targetID, userID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTargetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &target, nil
}

// GetTargetByID returns the target if it belongs to the user.
func (s *targetService) GetTargetByID(userID, targetID string) (*TargetView, error) {
	target, err := s.find(userID, targetID)
	if err != nil {
		return nil, err
	}
	v := s.view(*target)
	return &v, nil
}

// UpdateTarget applies a partial update to an owned target.
func (s *targetService) UpdateTarget(userID, targetID string, upd TargetUpdate) (*TargetView, error) {
	target, err := s.find(userID, targetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title must not be empty")
		}
		updates["title"] = title
	}
	if upd.TargetAmount != nil {
		if !models.ValidAmount(*upd.TargetAmount) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, amountMessage("target amount"))
		}
		updates["target_amount"] = upd.TargetAmount.Round(models.AmountScale)
	}
	if upd.Category != nil {
		category := strings.TrimSpace(*upd.Category)
		if category == "" {
			category = models.DefaultTargetCategory
		}
		updates["category"] = category
	}
	if upd.ClearDeadline {
		updates["deadline"] = nil
	} else if upd.Deadline != nil {
		updates["deadline"] = upd.Deadline.UTC()
	}
	if upd.Status != nil {
		switch *upd.Status {
		case models.TargetStatusActive, models.TargetStatusCompleted, models.TargetStatusPaused:
			updates["status"] = *upd.Status
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be active, completed or paused")
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(target).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetTargetByID(userID, targetID)
}

// AddProgress adds amount to the target's current amount in a single
// UPDATE so concurrent contributions are never lost.
func (s *targetService) AddProgress(userID, targetID string, amount decimal.Decimal) (*TargetView, error) {
	if !models.ValidAmount(amount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, amountMessage("amount"))
	}

	result := s.db.Model(&models.FinancialTarget{}).
		Where("id = ? AND user_id = ?", targetID, userID).
		Update("current_amount", gorm.Expr("ROUND(current_amount + ?, 2)", amount.Round(models.AmountScale)))
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrTargetNotFound
	}
	return s.GetTargetByID(userID, targetID)
}

// DeleteTarget soft-deletes an owned target.
func (s *targetService) DeleteTarget(userID, targetID string) error {
	result := s.db.Where("id = ? AND user_id = ?", targetID, userID).Delete(&models.FinancialTarget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTargetNotFound
	}
	return nil
}

// GetSummary aggregates all of the user's targets.
func (s *targetService) GetSummary(userID string) (*analytics.TargetSummary, error) {
	var targets []models.FinancialTarget
	if err := s.db.Where("user_id = ?", userID).Find(&targets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary := analytics.SummarizeTargets(targets)
	return &summary, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
