package models

// AuthProvider identifies how a user signs in.
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

// User represents the user model in the database
type User struct {
	Base
	Name         string            `gorm:"not null" json:"name"`
	Email        string            `gorm:"uniqueIndex;not null" json:"email"`
	Password     string            `json:"-"`
	AuthProvider AuthProvider      `gorm:"not null;default:local" json:"authProvider"`
	Transactions []Transaction     `gorm:"foreignKey:UserID" json:"-"`
	Targets      []FinancialTarget `gorm:"foreignKey:UserID" json:"-"`
}
