package oracle

import (
	"testing"
	"time"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
)

func TestNewGeminiClientEnforcesTimeout(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}

	timeout := 42 * time.Second
	cfg := &config.AgentAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.5-flash",
		APIKey:   "test-key",
		Timeout:  &timeout,
	}

	client, err := NewGeminiClient(cfg, config.AgentJobAnalysis, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			t.Errorf("closing client: %v", err)
		}
	}()

	// The configured timeout must reach the HTTP client handed to the
	// API, so a hung connection cannot stall an agent past its budget.
	if client.httpClient.Timeout != timeout {
		t.Errorf("http client timeout = %v, want %v", client.httpClient.Timeout, timeout)
	}
}
