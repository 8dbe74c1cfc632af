package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jodijonatan/cashnote/internal/models"
)

// CategoryTotal is the expense sum for one category.
type CategoryTotal struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Breakdown is the expense-by-category view over a trailing window.
type Breakdown struct {
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	Categories         []CategoryTotal            `json:"categories"`
	TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
	Days               int                        `json:"days"`
}

// CategoryBreakdown sums expense transactions per category. TotalExpenses is
// the sum of the per-category sums. Categories is ordered by amount
// descending, then by name.
func CategoryBreakdown(txs []models.Transaction, days int) Breakdown {
	b := Breakdown{
		ExpensesByCategory: make(map[string]decimal.Decimal),
		Categories:         []CategoryTotal{},
		TotalExpenses:      decimal.Zero,
		Days:               days,
	}
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		cur, ok := b.ExpensesByCategory[tx.Category]
		if !ok {
			cur = decimal.Zero
		}
		b.ExpensesByCategory[tx.Category] = cur.Add(tx.Amount)
	}

	for name, amount := range b.ExpensesByCategory {
		b.Categories = append(b.Categories, CategoryTotal{Name: name, Amount: amount})
		b.TotalExpenses = b.TotalExpenses.Add(amount)
	}
	sort.Slice(b.Categories, func(i, j int) bool {
		if c := b.Categories[i].Amount.Cmp(b.Categories[j].Amount); c != 0 {
			return c > 0
		}
		return b.Categories[i].Name < b.Categories[j].Name
	})
	return b
}

// Top returns at most n leading categories.
func (b Breakdown) Top(n int) []CategoryTotal {
	if n >= len(b.Categories) {
		return b.Categories
	}
	return b.Categories[:n]
}
