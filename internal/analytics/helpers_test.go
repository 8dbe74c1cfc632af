package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jodijonatan/cashnote/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tx(kind models.TransactionType, amount, category string, date time.Time) models.Transaction {
	return models.Transaction{Type: kind, Amount: dec(amount), Category: category, Date: date}
}

func income(amount string, date time.Time) models.Transaction {
	return tx(models.TransactionTypeIncome, amount, "salary", date)
}

func expense(amount, category string, date time.Time) models.Transaction {
	return tx(models.TransactionTypeExpense, amount, category, date)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}
