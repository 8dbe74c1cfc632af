package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jodijonatan/cashnote/internal/analytics"
	"github.com/jodijonatan/cashnote/internal/models"
	"github.com/jodijonatan/cashnote/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	FindOrCreateGoogleUser(email, name string) (*models.User, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category string
}

// TransactionInput carries the writable fields of a transaction.
type TransactionInput struct {
	Amount      decimal.Decimal
	Type        models.TransactionType
	Category    string
	Description string
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string, filter TransactionFilter, page *pagination.PageRequest) ([]models.Transaction, int64, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	GetSummary(userID string, window analytics.Window) (*analytics.PeriodSummary, error)
	GetChart(userID string, window analytics.Window) ([]analytics.ChartPoint, error)
	GetCategoryBreakdown(userID string, days int) (*analytics.Breakdown, error)
}

// TargetView is a target together with its derived progress fields.
type TargetView struct {
	models.FinancialTarget
	analytics.ProgressInfo
}

// TargetInput carries the fields of a new target.
type TargetInput struct {
	Title        string
	TargetAmount decimal.Decimal
	Category     string
	Deadline     *time.Time
}

// TargetUpdate carries a partial target update. Nil fields are left unchanged;
// ClearDeadline removes the deadline.
type TargetUpdate struct {
	Title         *string
	TargetAmount  *decimal.Decimal
	Category      *string
	Deadline      *time.Time
	ClearDeadline bool
	Status        *models.TargetStatus
}

// TargetServicer defines the contract for savings-target business logic.
type TargetServicer interface {
	CreateTarget(userID string, in TargetInput) (*TargetView, error)
	GetUserTargets(userID string) ([]TargetView, error)
	GetTargetByID(userID, targetID string) (*TargetView, error)
	UpdateTarget(userID, targetID string, upd TargetUpdate) (*TargetView, error)
	AddProgress(userID, targetID string, amount decimal.Decimal) (*TargetView, error)
	DeleteTarget(userID, targetID string) error
	GetSummary(userID string) (*analytics.TargetSummary, error)
}

// AdviceResult is the advisor's answer and the context it was built from.
type AdviceResult struct {
	Advice  string             `json:"advice"`
	Context analytics.Snapshot `json:"context"`
}

// AnalysisResult is the advisor's commentary on a category breakdown.
type AnalysisResult struct {
	Analysis           string                     `json:"analysis"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	Categories         []analytics.CategoryTotal  `json:"categories"`
	TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
}

// AdvisorServicer defines the contract for advisor queries.
type AdvisorServicer interface {
	Advise(ctx context.Context, userID, question string) (*AdviceResult, error)
	Analyze(ctx context.Context, userID string) (*AnalysisResult, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
