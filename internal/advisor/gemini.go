package advisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiAPIVersion is the Gemini API version the client targets.
const GeminiAPIVersion = "v1beta"

// apiKeyInvalidReason is the google.rpc.ErrorInfo reason sent for a bad key.
const apiKeyInvalidReason = "API_KEY_INVALID"

// GeminiClient generates text with the Gemini API.
type GeminiClient struct {
	models *genai.Models
	model  string
}

// NewGeminiClient creates a Gemini TextGenerator whose requests time out
// after timeout. An empty baseURL uses the SDK default endpoint.
func NewGeminiClient(ctx context.Context, apiKey, model, baseURL string, timeout time.Duration) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    baseURL,
			APIVersion: GeminiAPIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClient{models: client.Models, model: model}, nil
}

// Generate implements TextGenerator.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}

// classify maps Gemini API errors onto the provider sentinels.
func classify(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var ptr *genai.APIError
		if !errors.As(err, &ptr) || ptr == nil {
			return fmt.Errorf("calling gemini: %w", err)
		}
		apiErr = *ptr
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden ||
		apiErr.Status == "UNAUTHENTICATED" || apiErr.Status == "PERMISSION_DENIED" ||
		hasReason(apiErr.Details, apiKeyInvalidReason):
		return fmt.Errorf("%w: %s", ErrInvalidAPIKey, apiErr.Message)
	default:
		return fmt.Errorf("gemini error %d (%s): %s", apiErr.Code, apiErr.Status, apiErr.Message)
	}
}

func hasReason(details []map[string]any, reason string) bool {
	for _, d := range details {
		if r, ok := d["reason"].(string); ok && r == reason {
			return true
		}
	}
	return false
}
