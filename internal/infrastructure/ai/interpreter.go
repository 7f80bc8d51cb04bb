// Package ai holds the HTTP client for the external notation
// interpretation service, used as a last-resort fallback when every
// deterministic resolution strategy has failed.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
)

// maxResponseSize caps the interpretation response body
const maxResponseSize = 1 * 1024 * 1024 // 1MB

// minConfidence is the floor below which a candidate is discarded
const minConfidence = 0.5

// HTTPInterpreter calls an external service that maps free-form notation
// text to a structured operation. It implements ports.Interpreter.
type HTTPInterpreter struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPInterpreterFromEnv builds the interpreter from AI_INTERPRETER_URL
// and AI_INTERPRETER_KEY. Returns nil when no endpoint is configured, which
// callers treat as "AI fallback unavailable".
func NewHTTPInterpreterFromEnv() *HTTPInterpreter {
	endpoint := os.Getenv("AI_INTERPRETER_URL")
	if endpoint == "" {
		return nil
	}
	return &HTTPInterpreter{
		endpoint: endpoint,
		apiKey:   os.Getenv("AI_INTERPRETER_KEY"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type interpretRequest struct {
	Category string `json:"category"`
	Notation string `json:"notation"`
}

type interpretResponse struct {
	Operation  *models.Operation `json:"operation"`
	Confidence float64           `json:"confidence"`
}

// Interpret sends the notation to the external service. A nil operation
// with a nil error means the service had no confident candidate.
func (i *HTTPInterpreter) Interpret(ctx context.Context, category constants.OperationCategory, rawNotation string) (*models.Operation, error) {
	payload, err := json.Marshal(interpretRequest{
		Category: string(category),
		Notation: rawNotation,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode interpret request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build interpret request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if i.apiKey != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+i.apiKey)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("interpret request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read interpret response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("interpret service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result interpretResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode interpret response: %w", err)
	}

	if result.Operation == nil || result.Confidence < minConfidence {
		return nil, nil
	}
	// The service's category must agree with the requested one; a
	// cross-category candidate is worse than no candidate.
	if result.Operation.Category != category {
		return nil, nil
	}
	return result.Operation, nil
}
