// Package oracle provides the text-generation backend used by the
// specialist agents. Every agent speaks the same narrow protocol: a
// system prompt, a user prompt, and a response schema, answered with
// raw JSON. Agents that cannot reach an oracle fall back to their
// rule-based implementations, so a missing API key disables this
// package without disabling the pipeline.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

// ErrUnavailable is returned by New when no credentials are configured.
// Callers treat it as "run rule-based", not as a failure.
var ErrUnavailable = fmt.Errorf("oracle unavailable: no API key configured")

// Request describes one structured generation call
type Request struct {
	// Agent identifies the calling agent for tracing and logging
	Agent string

	System string
	User   string

	// Schema constrains the response shape. Required: every agent
	// consumes strictly structured output.
	Schema *genai.Schema

	// Attributes are added to the operation span
	Attributes []attribute.KeyValue
}

// TokenUsage represents token usage information from oracle responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// ModelInfo represents information about the backing model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// Client is the generation backend used by the agents
type Client interface {
	// GenerateJSON runs one structured generation call and returns the
	// raw JSON response
	GenerateJSON(ctx context.Context, req Request) (json.RawMessage, *TokenUsage, error)

	// GetModelInfo checks the readiness and availability of the configured model
	GetModelInfo(ctx context.Context) *ModelInfo

	// GetCircuitBreakerStats returns circuit breaker statistics
	GetCircuitBreakerStats() map[string]any

	Close() error
}

// New creates an oracle client for one agent from its effective
// configuration. Returns ErrUnavailable when no API key is set.
func New(cfg *config.AgentAIConfig, agent string, logger *errors.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrUnavailable
	}

	switch cfg.Provider {
	case "gemini", "":
		return NewGeminiClient(cfg, agent, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unsupported oracle provider: %s", cfg.Provider), nil)
	}
}
