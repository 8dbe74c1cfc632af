package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

func init() {
	Register()
}

type transactionInput struct {
	Amount decimal.Decimal `binding:"positive_decimal"`
	Type   string          `binding:"required,transaction_type"`
	Date   string          `binding:"omitempty,date_string"`
}

type targetInput struct {
	Status string `binding:"omitempty,target_status"`
}

func TestTransactionValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   transactionInput
		wantErr bool
	}{
		{"valid_income", transactionInput{Amount: decimal.NewFromInt(100), Type: "income"}, false},
		{"valid_expense_with_date", transactionInput{Amount: decimal.RequireFromString("12.50"), Type: "expense", Date: "2024-01-03"}, false},
		{"rfc3339_date", transactionInput{Amount: decimal.NewFromInt(1), Type: "expense", Date: "2024-01-03T10:00:00Z"}, false},
		{"zero_amount", transactionInput{Amount: decimal.Zero, Type: "income"}, true},
		{"missing_amount", transactionInput{Type: "income"}, true},
		{"trailing_zeros", transactionInput{Amount: decimal.RequireFromString("12.500"), Type: "income"}, false},
		{"three_decimal_places", transactionInput{Amount: decimal.RequireFromString("0.001"), Type: "income"}, true},
		{"rounds_up_to_cent", transactionInput{Amount: decimal.RequireFromString("0.006"), Type: "expense"}, true},
		{"negative_amount", transactionInput{Amount: decimal.NewFromInt(-5), Type: "income"}, true},
		{"transfer_type", transactionInput{Amount: decimal.NewFromInt(5), Type: "transfer"}, true},
		{"bad_date", transactionInput{Amount: decimal.NewFromInt(5), Type: "income", Date: "03/01/2024"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTargetStatusValidation(t *testing.T) {
	for _, status := range []string{"", "active", "completed", "paused"} {
		if err := binding.Validator.ValidateStruct(targetInput{Status: status}); err != nil {
			t.Errorf("status %q rejected: %v", status, err)
		}
	}
	if err := binding.Validator.ValidateStruct(targetInput{Status: "archived"}); err == nil {
		t.Error("expected archived to be rejected")
	}
}
