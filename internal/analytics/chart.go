package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jodijonatan/cashnote/internal/models"
)

// Short Indonesian month names used in chart labels.
var monthLabels = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// ChartPoint is one day of the chart series.
type ChartPoint struct {
	Date    string          `json:"date"`
	Name    string          `json:"name"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// ChartSeries groups txs by UTC calendar date in ascending order. Dates
// without transactions are omitted.
func ChartSeries(txs []models.Transaction) []ChartPoint {
	byDate := make(map[string]*ChartPoint)
	for _, tx := range txs {
		day := tx.Date.UTC()
		key := day.Format(DateLayout)
		p, ok := byDate[key]
		if !ok {
			p = &ChartPoint{
				Date:    key,
				Name:    fmt.Sprintf("%d %s", day.Day(), monthLabels[day.Month()-1]),
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			}
			byDate[key] = p
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			p.Income = p.Income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			p.Expense = p.Expense.Add(tx.Amount)
		}
	}

	points := make([]ChartPoint, 0, len(byDate))
	for _, p := range byDate {
		p.Balance = p.Income.Sub(p.Expense)
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}
