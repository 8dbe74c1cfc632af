package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/jodijonatan/cashnote/internal/advisor"
	"github.com/jodijonatan/cashnote/internal/analytics"
	apperrors "github.com/jodijonatan/cashnote/internal/errors"
	"github.com/jodijonatan/cashnote/internal/models"
	"github.com/jodijonatan/cashnote/internal/pagination"
)

const (
	// recentTransactionLimit bounds the advisor context.
	recentTransactionLimit = 50

	// NoTransactionsAdvice is returned instead of calling the provider when
	// the user has no transactions yet.
	NoTransactionsAdvice = "Kamu belum memiliki data transaksi. Mulai dengan menambahkan transaksi untuk mendapatkan saran keuangan yang personal."

	missingAdvisorDetails = "GEMINI_API_KEY is missing"
)

// advisorService builds financial context and delegates to an Advisor.
type advisorService struct {
	db           *gorm.DB
	transactions TransactionServicer
	advisor      advisor.Advisor
}

// NewAdvisorService creates a new AdvisorServicer. A nil adv leaves the
// service unconfigured; every call then fails with ErrAdvisorNotConfigured.
func NewAdvisorService(db *gorm.DB, transactions TransactionServicer, adv advisor.Advisor) AdvisorServicer {
	return &advisorService{db: db, transactions: transactions, advisor: adv}
}

func (s *advisorService) configured() error {
	if s.advisor == nil {
		return apperrors.WithDetails(apperrors.ErrAdvisorNotConfigured, missingAdvisorDetails)
	}
	return nil
}

// Advise answers question from the user's last transactions and the leading
// expense categories of the last 30 days.
func (s *advisorService) Advise(ctx context.Context, userID, question string) (*AdviceResult, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(question) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Question is required")
	}

	var (
		recent    []models.Transaction
		breakdown *analytics.Breakdown
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.db.WithContext(gctx).
			Where("user_id = ?", userID).
			Order("date DESC").
			Scopes(pagination.Paginate(pagination.First(recentTransactionLimit))).
			Find(&recent).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		breakdown, err = s.transactions.GetCategoryBreakdown(userID, analytics.DefaultBreakdownDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(recent) == 0 {
		return &AdviceResult{
			Advice:  NoTransactionsAdvice,
			Context: analytics.BuildSnapshot(nil, nil),
		}, nil
	}

	snap := analytics.BuildSnapshot(recent, breakdown.Top(3))
	advice, err := s.advisor.Advise(ctx, snap, question)
	if err != nil {
		return nil, providerError(err)
	}
	return &AdviceResult{Advice: advice, Context: snap}, nil
}

// Analyze comments on the user's expense breakdown for the last 30 days.
func (s *advisorService) Analyze(ctx context.Context, userID string) (*AnalysisResult, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}

	breakdown, err := s.transactions.GetCategoryBreakdown(userID, analytics.DefaultBreakdownDays)
	if err != nil {
		return nil, err
	}

	analysis, err := s.advisor.Analyze(ctx, *breakdown)
	if err != nil {
		return nil, providerError(err)
	}
	return &AnalysisResult{
		Analysis:           analysis,
		ExpensesByCategory: breakdown.ExpensesByCategory,
		Categories:         breakdown.Categories,
		TotalExpenses:      breakdown.TotalExpenses,
	}, nil
}

// providerError maps an advisor failure onto the API error taxonomy.
func providerError(err error) *apperrors.AppError {
	sentinel := apperrors.ErrAdvisorFailed
	switch {
	case errors.Is(err, advisor.ErrQuotaExceeded):
		sentinel = apperrors.ErrAdvisorQuota
	case errors.Is(err, advisor.ErrInvalidAPIKey):
		sentinel = apperrors.ErrAdvisorInvalidKey
	}
	appErr := apperrors.Wrap(sentinel, err)
	appErr.Details = err.Error()
	return appErr
}
