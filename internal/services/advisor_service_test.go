package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jodijonatan/cashnote/internal/advisor"
	"github.com/jodijonatan/cashnote/internal/analytics"
	apperrors "github.com/jodijonatan/cashnote/internal/errors"
	"github.com/jodijonatan/cashnote/internal/models"
	"github.com/jodijonatan/cashnote/internal/testutil"
)

// stubAdvisor records its inputs and returns canned output.
type stubAdvisor struct {
	reply     string
	err       error
	calls     int
	snap      analytics.Snapshot
	question  string
	breakdown analytics.Breakdown
}

func (s *stubAdvisor) Advise(_ context.Context, snap analytics.Snapshot, question string) (string, error) {
	s.calls++
	s.snap = snap
	s.question = question
	return s.reply, s.err
}

func (s *stubAdvisor) Analyze(_ context.Context, b analytics.Breakdown) (string, error) {
	s.calls++
	s.breakdown = b
	return s.reply, s.err
}

func TestAdvisorService_NotConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAdvisorService(db, NewTransactionService(db), nil)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.Advise(context.Background(), user.ID, "saran?")
	testutil.AssertAppError(t, err, "ADVISOR_NOT_CONFIGURED")

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Details != "GEMINI_API_KEY is missing" {
		t.Errorf("unexpected details: %q", appErr.Details)
	}

	_, err = svc.Analyze(context.Background(), user.ID)
	testutil.AssertAppError(t, err, "ADVISOR_NOT_CONFIGURED")
}

func TestAdvisorService_Advise(t *testing.T) {
	t.Run("empty_question", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := &stubAdvisor{reply: "ok"}
		svc := NewAdvisorService(db, NewTransactionService(db), stub)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Advise(context.Background(), user.ID, "   ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		if stub.calls != 0 {
			t.Error("advisor must not be called for an empty question")
		}
	})

	t.Run("no_transactions_skips_provider", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := &stubAdvisor{reply: "should not be used"}
		svc := NewAdvisorService(db, NewTransactionService(db), stub)
		user := testutil.CreateTestUser(t, db)

		res, err := svc.Advise(context.Background(), user.ID, "Bagaimana keuanganku?")
		testutil.AssertNoError(t, err)

		if res.Advice != NoTransactionsAdvice {
			t.Errorf("unexpected advice: %q", res.Advice)
		}
		if res.Context.TransactionCount != 0 || !res.Context.Balance.IsZero() {
			t.Errorf("expected zero context, got %+v", res.Context)
		}
		if stub.calls != 0 {
			t.Error("advisor must not be called without transactions")
		}
	})

	t.Run("builds_context_from_recent_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := &stubAdvisor{reply: "Kurangi makan di luar."}
		svc := NewAdvisorService(db, NewTransactionService(db), stub)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		now := time.Now().UTC()
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, 500000, "gaji", now.AddDate(0, 0, -2))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 200000, "makan", now.AddDate(0, 0, -1))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 100000, "transport", now.AddDate(0, 0, -1))
		testutil.CreateTestTransaction(t, db, other.ID, models.TransactionTypeExpense, 999999, "makan", now)

		res, err := svc.Advise(context.Background(), user.ID, "Saran hemat?")
		testutil.AssertNoError(t, err)

		if res.Advice != "Kurangi makan di luar." {
			t.Errorf("unexpected advice: %q", res.Advice)
		}
		if stub.question != "Saran hemat?" {
			t.Errorf("question not forwarded, got %q", stub.question)
		}
		ctx := res.Context
		if ctx.TransactionCount != 3 {
			t.Errorf("expected 3 transactions, got %d", ctx.TransactionCount)
		}
		if !ctx.TotalIncome.Equal(decimal.NewFromInt(500000)) || !ctx.TotalExpense.Equal(decimal.NewFromInt(300000)) {
			t.Errorf("unexpected totals: %s / %s", ctx.TotalIncome, ctx.TotalExpense)
		}
		if !ctx.Balance.Equal(decimal.NewFromInt(200000)) {
			t.Errorf("expected balance 200000, got %s", ctx.Balance)
		}
		if !ctx.AverageExpense.Equal(decimal.NewFromInt(150000)) {
			t.Errorf("expected average expense 150000, got %s", ctx.AverageExpense)
		}
		if len(ctx.TopCategories) != 2 || ctx.TopCategories[0].Name != "makan" {
			t.Errorf("unexpected top categories: %+v", ctx.TopCategories)
		}
	})

	t.Run("caps_context_at_fifty_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := &stubAdvisor{reply: "ok"}
		svc := NewAdvisorService(db, NewTransactionService(db), stub)
		user := testutil.CreateTestUser(t, db)

		base := time.Now().UTC().AddDate(0, 0, -1)
		for i := 0; i < 55; i++ {
			testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 1000, fmt.Sprintf("c%d", i%3), base.Add(-time.Duration(i)*time.Hour))
		}

		res, err := svc.Advise(context.Background(), user.ID, "apa?")
		testutil.AssertNoError(t, err)
		if res.Context.TransactionCount != 50 {
			t.Errorf("expected 50 transactions in context, got %d", res.Context.TransactionCount)
		}
		if len(stub.snap.Recent) != 10 {
			t.Errorf("expected 10 recent transactions for the prompt, got %d", len(stub.snap.Recent))
		}
	})

	t.Run("maps_provider_errors", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			code string
		}{
			{"quota", fmt.Errorf("gemini: %w", advisor.ErrQuotaExceeded), "ADVISOR_QUOTA_EXCEEDED"},
			{"invalid_key", fmt.Errorf("gemini: %w", advisor.ErrInvalidAPIKey), "ADVISOR_INVALID_KEY"},
			{"other", errors.New("connection reset"), "ADVISOR_FAILED"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				db := testutil.SetupTestDB(t)
				defer testutil.TeardownTestDB(t, db)
				svc := NewAdvisorService(db, NewTransactionService(db), &stubAdvisor{err: tt.err})
				user := testutil.CreateTestUser(t, db)
				testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 1000, "makan", time.Now().UTC())

				_, err := svc.Advise(context.Background(), user.ID, "saran")
				testutil.AssertAppError(t, err, tt.code)

				var appErr *apperrors.AppError
				if errors.As(err, &appErr) && appErr.Details != tt.err.Error() {
					t.Errorf("expected details %q, got %q", tt.err.Error(), appErr.Details)
				}
			})
		}
	})
}

func TestAdvisorService_Analyze(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	stub := &stubAdvisor{reply: "Pengeluaran terbesar untuk makan."}
	svc := NewAdvisorService(db, NewTransactionService(db), stub)
	user := testutil.CreateTestUser(t, db)

	now := time.Now().UTC()
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 300, "makan", now.AddDate(0, 0, -3))
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 100, "pulsa", now.AddDate(0, 0, -3))
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 900, "lama", now.AddDate(0, 0, -45))

	res, err := svc.Analyze(context.Background(), user.ID)
	testutil.AssertNoError(t, err)

	if res.Analysis != stub.reply {
		t.Errorf("unexpected analysis: %q", res.Analysis)
	}
	if !res.TotalExpenses.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected total 400, got %s", res.TotalExpenses)
	}
	if len(res.ExpensesByCategory) != 2 {
		t.Errorf("expected 2 categories, got %v", res.ExpensesByCategory)
	}
	if stub.breakdown.Days != analytics.DefaultBreakdownDays {
		t.Errorf("expected %d-day window, got %d", analytics.DefaultBreakdownDays, stub.breakdown.Days)
	}
}
