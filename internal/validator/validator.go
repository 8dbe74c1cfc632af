// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jodijonatan/cashnote/internal/analytics"
	"github.com/jodijonatan/cashnote/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("target_status", validateTargetStatus)
		_ = v.RegisterValidation("positive_decimal", validatePositiveDecimal)
		_ = v.RegisterValidation("date_string", validateDateString)
	}
}

// decimalValue exposes decimal.Decimal to tag validators as its string form.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateTargetStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "completed", "paused":
		return true
	}
	return false
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return models.ValidAmount(d)
}

func validateDateString(fl validator.FieldLevel) bool {
	_, err := analytics.ParseDate(fl.Field().String())
	return err == nil
}
