package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/jodijonatan/cashnote/internal/models"
	"github.com/jodijonatan/cashnote/internal/testutil"
	"github.com/jodijonatan/cashnote/internal/uuid"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice", "alice@example.com", "password123")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected generated user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.Name != "Alice" {
			t.Errorf("expected name Alice, got %s", user.Name)
		}
		if user.Password == "password123" {
			t.Error("password must be stored hashed")
		}
		if user.AuthProvider != models.AuthProviderLocal {
			t.Errorf("expected local provider, got %s", user.AuthProvider)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("A", "dup@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("B", "DUP@example.com", "password456")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("duplicate_email_inserted_after_check", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		// Another registration lands between the email check and the insert.
		inserted := false
		err := db.Callback().Create().Before("gorm:create").Register("test:concurrent_signup", func(tx *gorm.DB) {
			if inserted || tx.Statement.Table != "users" {
				return
			}
			inserted = true
			now := time.Now()
			tx.Session(&gorm.Session{NewDB: true}).Exec(
				"INSERT INTO users (id, name, email, password, auth_provider, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
				uuid.New(), "First", "race@example.com", "", models.AuthProviderLocal, now, now,
			)
		})
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("Second", "race@example.com", "password123")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
		if !inserted {
			t.Fatal("expected the competing insert to run")
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		cases := [][3]string{
			{"", "a@example.com", "password123"},
			{"A", "", "password123"},
			{"A", "a@example.com", ""},
		}
		for _, c := range cases {
			_, err := svc.CreateUser(c[0], c[1], c[2])
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})

	t.Run("email_normalized_to_lowercase", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice", "  Alice@EXAMPLE.COM ", "password123")
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created := testutil.CreateTestUserWithEmail(t, db, "found@example.com")
		user, err := svc.GetUserByEmail("Found@Example.com")
		testutil.AssertNoError(t, err)

		if user.ID != created.ID {
			t.Errorf("expected user ID %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByEmail("nonexistent@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created := testutil.CreateTestUser(t, db)
		user, err := svc.GetUserByID(created.ID)
		testutil.AssertNoError(t, err)

		if user.Email != created.Email {
			t.Errorf("expected email %s, got %s", created.Email, user.Email)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByID("0190a6e2-6f3c-7c4e-9b5e-1f2a3b4c5d6e")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestAttemptLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)
	created := testutil.CreateTestUserWithEmail(t, db, "login@example.com")

	t.Run("valid_credentials", func(t *testing.T) {
		user, err := svc.AttemptLogin("login@example.com", testutil.TestPassword)
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := svc.AttemptLogin("login@example.com", "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := svc.AttemptLogin("ghost@example.com", testutil.TestPassword)
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestFindOrCreateGoogleUser(t *testing.T) {
	t.Run("creates_passwordless_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.FindOrCreateGoogleUser("Budi@Gmail.com", "Budi")
		testutil.AssertNoError(t, err)

		if user.Email != "budi@gmail.com" || user.Name != "Budi" {
			t.Errorf("unexpected user: %+v", user)
		}
		if user.AuthProvider != models.AuthProviderGoogle {
			t.Errorf("expected google provider, got %s", user.AuthProvider)
		}
		if user.Password != "" {
			t.Error("google user must not have a password")
		}

		// Password login must never succeed for a passwordless account.
		if _, err := svc.AttemptLogin("budi@gmail.com", ""); err == nil {
			t.Error("expected login without password to fail")
		}
	})

	t.Run("returns_existing_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		existing := testutil.CreateTestUserWithEmail(t, db, "exists@example.com")
		user, err := svc.FindOrCreateGoogleUser("exists@example.com", "Other Name")
		testutil.AssertNoError(t, err)

		if user.ID != existing.ID {
			t.Errorf("expected existing user %s, got %s", existing.ID, user.ID)
		}
	})

	t.Run("name_defaults_to_email_local_part", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.FindOrCreateGoogleUser("sari@example.com", "")
		testutil.AssertNoError(t, err)
		if user.Name != "sari" {
			t.Errorf("expected name sari, got %s", user.Name)
		}
	})
}
