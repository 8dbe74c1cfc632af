package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jodijonatan/cashnote/internal/models"
)

// ProgressInfo holds the derived, non-persisted fields of a target.
type ProgressInfo struct {
	Progress    float64 `json:"progress"`
	DaysLeft    *int    `json:"daysLeft"`
	IsCompleted bool    `json:"isCompleted"`
	IsOverdue   bool    `json:"isOverdue"`
}

// TargetSummary aggregates all of a user's targets.
type TargetSummary struct {
	TotalTargets       int             `json:"totalTargets"`
	CompletedTargets   int             `json:"completedTargets"`
	ActiveTargets      int             `json:"activeTargets"`
	TotalTargetAmount  decimal.Decimal `json:"totalTargetAmount"`
	TotalCurrentAmount decimal.Decimal `json:"totalCurrentAmount"`
	OverallProgress    float64         `json:"overallProgress"`
}

// TargetProgress derives the progress fields of t as of now.
func TargetProgress(t models.FinancialTarget, now time.Time) ProgressInfo {
	raw := Percent(t.CurrentAmount, t.TargetAmount)
	reached := raw.GreaterThanOrEqual(hundred)

	p := ProgressInfo{
		Progress:    decimal.Min(raw, hundred).InexactFloat64(),
		IsCompleted: reached,
	}
	if t.Deadline != nil {
		days := int(math.Ceil(t.Deadline.Sub(now).Hours() / 24))
		p.DaysLeft = &days
		p.IsOverdue = t.Deadline.Before(now) && !reached
	}
	return p
}

// SummarizeTargets counts completed targets as those whose current amount
// has reached the target amount.
func SummarizeTargets(targets []models.FinancialTarget) TargetSummary {
	s := TargetSummary{
		TotalTargets:       len(targets),
		TotalTargetAmount:  decimal.Zero,
		TotalCurrentAmount: decimal.Zero,
	}
	for _, t := range targets {
		if t.TargetAmount.IsPositive() && t.CurrentAmount.GreaterThanOrEqual(t.TargetAmount) {
			s.CompletedTargets++
		}
		s.TotalTargetAmount = s.TotalTargetAmount.Add(t.TargetAmount)
		s.TotalCurrentAmount = s.TotalCurrentAmount.Add(t.CurrentAmount)
	}
	s.ActiveTargets = s.TotalTargets - s.CompletedTargets
	s.OverallProgress = Percent(s.TotalCurrentAmount, s.TotalTargetAmount).Round(1).InexactFloat64()
	return s
}
