package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jodijonatan/cashnote/internal/models"
)

// Snapshot is the numeric financial context handed to the advisor.
type Snapshot struct {
	TotalIncome      decimal.Decimal      `json:"totalIncome"`
	TotalExpense     decimal.Decimal      `json:"totalExpense"`
	Balance          decimal.Decimal      `json:"balance"`
	TransactionCount int                  `json:"transactionCount"`
	AverageExpense   decimal.Decimal      `json:"averageExpense"`
	TopCategories    []CategoryTotal      `json:"topCategories"`
	Recent           []models.Transaction `json:"-"`
}

// recentForPrompt caps how many transactions are listed in advisor prompts.
const recentForPrompt = 10

// BuildSnapshot summarises recent (newest first) together with the category
// leaders of the trailing window.
func BuildSnapshot(recent []models.Transaction, leaders []CategoryTotal) Snapshot {
	totals := Sum(recent)

	expenses := 0
	for _, tx := range recent {
		if tx.Type == models.TransactionTypeExpense {
			expenses++
		}
	}
	avg := decimal.Zero
	if expenses > 0 {
		avg = totals.Expense.Div(decimal.NewFromInt(int64(expenses))).Round(2)
	}

	if leaders == nil {
		leaders = []CategoryTotal{}
	}
	shown := recent
	if len(shown) > recentForPrompt {
		shown = shown[:recentForPrompt]
	}

	return Snapshot{
		TotalIncome:      totals.Income,
		TotalExpense:     totals.Expense,
		Balance:          totals.Balance(),
		TransactionCount: totals.Count,
		AverageExpense:   avg,
		TopCategories:    leaders,
		Recent:           shown,
	}
}

// SavingsRate returns balance as a percentage of income, 0 without income.
func (s Snapshot) SavingsRate() float64 {
	return Percent(s.Balance, s.TotalIncome).InexactFloat64()
}

// TopExpenseCategory returns the leading category name, or "" if none.
func (s Snapshot) TopExpenseCategory() string {
	if len(s.TopCategories) == 0 {
		return ""
	}
	return s.TopCategories[0].Name
}
