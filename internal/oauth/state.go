package oauth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const stateAudience = "google-oauth-state"

// StateStore issues signed, expiring OAuth state values. Validation needs
// only the signing key, so issuing any number of states never invalidates
// earlier ones.
type StateStore struct {
	key  []byte
	ttl  time.Duration
	now  func() time.Time
	used *ristretto.Cache[string, struct{}]
}

// NewStateStore creates a state store whose states are signed with a key
// derived from secret.
func NewStateStore(secret string, ttl time.Duration) (*StateStore, error) {
	if secret == "" {
		return nil, errors.New("state signing secret is required")
	}
	used, err := ristretto.NewCache(&ristretto.Config[string, struct{}]{
		NumCounters:        100000, // number of keys to track frequency of
		MaxCost:            10000,
		BufferItems:        64, // number of keys per Get buffer
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating state cache: %w", err)
	}

	// Distinct from the access-token key so a state can never pass as a login token.
	key := sha256.Sum256([]byte(stateAudience + ":" + secret))
	return &StateStore{key: key[:], ttl: ttl, now: time.Now, used: used}, nil
}

// Issue returns a new signed state value.
func (s *StateStore) Issue() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Audience:  jwt.ClaimStrings{stateAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("signing state: %w", err)
	}
	return state, nil
}

// Consume reports whether state was issued by this store, has not expired
// and has not been consumed before.
func (s *StateStore) Consume(state string) bool {
	if state == "" {
		return false
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(state, &claims,
		func(t *jwt.Token) (interface{}, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(stateAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.ID == "" {
		return false
	}

	// Replay guard. An entry the cache declines to admit weakens only this
	// check; issuing and validating states never depend on the cache.
	if _, seen := s.used.Get(claims.ID); seen {
		return false
	}
	if remaining := claims.ExpiresAt.Sub(s.now()); remaining > 0 {
		s.used.SetWithTTL(claims.ID, struct{}{}, 1, remaining)
		s.used.Wait()
	}
	return true
}

// Close releases the cache's background goroutines.
func (s *StateStore) Close() {
	s.used.Close()
}
