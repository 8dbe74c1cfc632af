package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are serialized as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// AmountScale is the number of fractional digits stored for money columns.
const AmountScale = 2

// ValidAmount reports whether d is positive and fits the money columns
// without rounding.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(AmountScale))
}

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a supported transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single income or expense entry owned by a user.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"userId"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Type        TransactionType `gorm:"not null;index" json:"type"`
	Category    string          `gorm:"not null" json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
}
