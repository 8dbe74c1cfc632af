package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TargetStatus represents the lifecycle state of a savings target
type TargetStatus string

const (
	TargetStatusActive    TargetStatus = "active"
	TargetStatusCompleted TargetStatus = "completed"
	TargetStatusPaused    TargetStatus = "paused"
)

// DefaultTargetCategory is used when a target is created without a category.
const DefaultTargetCategory = "general"

// FinancialTarget represents a savings goal with accumulated progress.
type FinancialTarget struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"userId"`
	Title         string          `gorm:"not null" json:"title"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"targetAmount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"currentAmount"`
	Category      string          `gorm:"not null;default:general" json:"category"`
	Deadline      *time.Time      `json:"deadline"`
	Status        TargetStatus    `gorm:"not null;default:active" json:"status"`
}

// TableName overrides the default table name.
func (FinancialTarget) TableName() string {
	return "financial_targets"
}
