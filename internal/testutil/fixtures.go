package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jodijonatan/cashnote/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of users created by CreateTestUser.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		Password:     string(hash),
		AuthProvider: models.AuthProviderLocal,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given type, amount and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount int64, category string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:   userID,
		Type:     txType,
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Date:     date.UTC(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestTarget creates an active target with the given amounts.
func CreateTestTarget(t *testing.T, db *gorm.DB, userID string, targetAmount, currentAmount int64) *models.FinancialTarget {
	t.Helper()

	target := &models.FinancialTarget{
		UserID:        userID,
		Title:         fmt.Sprintf("Test Target %d", nextID()),
		TargetAmount:  decimal.NewFromInt(targetAmount),
		CurrentAmount: decimal.NewFromInt(currentAmount),
		Category:      models.DefaultTargetCategory,
		Status:        models.TargetStatusActive,
	}
	if err := db.Create(target).Error; err != nil {
		t.Fatalf("failed to create test target: %v", err)
	}
	return target
}
