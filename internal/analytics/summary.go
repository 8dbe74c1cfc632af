package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jodijonatan/cashnote/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Period is the JSON form of a Window.
type Period struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Totals are the income/expense sums over a set of transactions.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

// Balance returns income minus expense.
func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// Comparison holds the previous period's figures and the relative change.
type Comparison struct {
	LastMonthIncome  decimal.Decimal `json:"lastMonthIncome"`
	LastMonthExpense decimal.Decimal `json:"lastMonthExpense"`
	LastMonthBalance decimal.Decimal `json:"lastMonthBalance"`
	IncomeChange     float64         `json:"incomeChange"`
	ExpenseChange    float64         `json:"expenseChange"`
	BalanceChange    float64         `json:"balanceChange"`
	Period           Period          `json:"period"`
}

// PeriodSummary is the response of the summary endpoint.
type PeriodSummary struct {
	Income            decimal.Decimal `json:"income"`
	Expense           decimal.Decimal `json:"expense"`
	Balance           decimal.Decimal `json:"balance"`
	TotalTransactions int             `json:"totalTransactions"`
	Period            Period          `json:"period"`
	Comparison        Comparison      `json:"comparison"`
}

// Sum partitions txs by type and totals each side.
func Sum(txs []models.Transaction) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero, Count: len(txs)}
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeIncome:
			t.Income = t.Income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	return t
}

// Summarize builds the period summary for current against previous.
func Summarize(current, previous []models.Transaction, window, prevWindow Window) PeriodSummary {
	cur := Sum(current)
	prev := Sum(previous)

	return PeriodSummary{
		Income:            cur.Income,
		Expense:           cur.Expense,
		Balance:           cur.Balance(),
		TotalTransactions: cur.Count,
		Period:            Period{StartDate: window.Start, EndDate: window.End},
		Comparison: Comparison{
			LastMonthIncome:  prev.Income,
			LastMonthExpense: prev.Expense,
			LastMonthBalance: prev.Balance(),
			IncomeChange:     PercentChange(cur.Income, prev.Income),
			ExpenseChange:    PercentChange(cur.Expense, prev.Expense),
			BalanceChange:    PercentChange(cur.Balance(), prev.Balance()),
			Period:           Period{StartDate: prevWindow.Start, EndDate: prevWindow.End},
		},
	}
}

// PercentChange returns (cur-prev)/|prev|*100 rounded to one decimal place,
// or exactly 0 when prev is zero.
func PercentChange(cur, prev decimal.Decimal) float64 {
	if prev.IsZero() {
		return 0
	}
	return cur.Sub(prev).Div(prev.Abs()).Mul(hundred).Round(1).InexactFloat64()
}

// Percent returns part/whole*100, or 0 when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
