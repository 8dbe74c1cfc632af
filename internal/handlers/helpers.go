package handlers

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jodijonatan/cashnote/internal/analytics"
	apperrors "github.com/jodijonatan/cashnote/internal/errors"
	"github.com/jodijonatan/cashnote/internal/middleware"
	"github.com/jodijonatan/cashnote/internal/uuid"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// MessageResponse represents a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// invalidInput wraps a binding or parsing failure as a 400.
func invalidInput(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// OptionalDate is a JSON date field that distinguishes an absent key from an
// explicit null. Set is true whenever the key was present; Value is nil for null
// or an empty string.
type OptionalDate struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON accepts null, "", YYYY-MM-DD or an RFC 3339 timestamp.
func (d *OptionalDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	d.Value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return analytics.ErrInvalidDate
	}
	if raw == "" {
		return nil
	}
	t, err := analytics.ParseDate(raw)
	if err != nil {
		return err
	}
	t = t.UTC()
	d.Value = &t
	return nil
}
