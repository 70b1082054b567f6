package oracle

import (
	"context"
	"crypto/rand"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.AgentAIConfig
	agent          string
	circuitBreaker *GenerationCircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *errors.Logger
}

// Ensure GeminiClient implements Client
var _ Client = (*GeminiClient)(nil)

// NewGeminiClient creates a new Gemini client instance for a specific agent
func NewGeminiClient(cfg *config.AgentAIConfig, agent string, logger *errors.Logger) (*GeminiClient, error) {
	// The per-agent timeout bounds every API call, including hung
	// connections the context deadline alone would not catch.
	httpClient := &http.Client{
		Timeout: *cfg.Timeout,
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, errors.NewOracleError(errors.ErrCodeOracleCallFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breakers with agent-specific configuration
	circuitBreaker := NewGenerationCircuitBreaker(agent, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(agent, cfg, logger)

	return &GeminiClient{
		client:     client,
		httpClient: httpClient,
		config:         cfg,
		agent:          agent,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiClient) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	// Create a timeout context for the model check
	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	// Get model information from the Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"agent", g.agent,
			"error", err.Error())
		return modelInfo
	}

	// Model is available, populate info
	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"agent", g.agent,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// modelCheckTimeout bounds the model availability check
const modelCheckTimeout = 10 * time.Second

// GenerateJSON runs one structured generation call with tracing,
// circuit breaker protection, and retries
func (g *GeminiClient) GenerateJSON(ctx context.Context, req Request) (json.RawMessage, *TokenUsage, error) {
	tracer := otel.Tracer("resumeforge.oracle.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+req.Agent)
	defer span.End()

	// Set base attributes
	span.SetAttributes(
		attribute.String("oracle.provider", "gemini"),
		attribute.String("oracle.model", g.config.Model),
		attribute.String("oracle.agent", req.Agent),
		attribute.Float64("oracle.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(req.Attributes...)

	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}

	// Apply temperature configuration if set
	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	if *g.config.UseSystemPrompts && req.System != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, req.Agent, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(req.User), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, nil, errors.NewOracleError(errors.ErrCodeOracleCallFailed,
			"Failed to generate content for "+req.Agent, err)
	}

	raw := json.RawMessage(result.Text())
	if !json.Valid(raw) {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, nil, errors.NewOracleError(errors.ErrCodeOracleParse,
			"Response is not valid JSON for "+req.Agent, nil)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("oracle.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("oracle.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("oracle.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return raw, tokenUsage, nil
}

// executeWithRetry executes a generation call with retry logic and exponential backoff
func (g *GeminiClient) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Log retry attempt
			g.logger.Warn("Retrying oracle operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			// Use crypto/rand for secure random jitter
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("Oracle operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	// Log final failure
	g.logger.LogError(lastErr, "Oracle operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiClient) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		if netErr.Timeout() {
			return true // Retry on timeouts
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiClient) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"generation_operations": g.circuitBreaker.GetStats(),
		"model_operations":      g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	generationHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = generationHealthy && modelHealthy

	return stats
}

// Close implements Client interface
func (g *GeminiClient) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	// Probably needed in streaming mode
	return nil
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
