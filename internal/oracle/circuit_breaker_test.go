package oracle

import (
	"testing"
	"time"

	"resumeforge/internal/config"
)

func TestIndependentCircuitBreakerConfigurations(t *testing.T) {
	// Test that each agent gets its own circuit breaker configuration

	analysisConfig := &config.AgentAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.5-pro",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	scoreConfig := &config.AgentAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash-lite",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      5,                // Different from analysis
			Interval:         30 * time.Second, // Different from analysis
			Timeout:          45 * time.Second, // Different from analysis
			MinRequests:      2,                // Different from analysis
			FailureThreshold: 0.7,              // Different from analysis
		},
	}

	calibrateConfig := &config.AgentAIConfig{
		Provider: "gemini",
		Model:    "gemini-1.5-pro",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      4,                // Different from others
			Interval:         90 * time.Second, // Different from others
			Timeout:          75 * time.Second, // Different from others
			MinRequests:      5,                // Different from others
			FailureThreshold: 0.5,              // Different from others
		},
	}

	// Create circuit breakers for each agent
	analysisCB := NewGenerationCircuitBreaker(config.AgentJobAnalysis, analysisConfig, nil)
	scoreCB := NewGenerationCircuitBreaker(config.AgentScore, scoreConfig, nil)
	calibrateCB := NewGenerationCircuitBreaker(config.AgentCalibrate, calibrateConfig, nil)

	// Verify that each circuit breaker has independent configuration
	t.Run("JobAnalysisCircuitBreaker", func(t *testing.T) {
		stats := analysisCB.GetStats()

		// Check that the circuit breaker exists and has correct name
		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "Oracle-" + config.AgentJobAnalysis
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}

		// Verify it's in closed state initially
		state, ok := stats["state"].(string)
		if !ok {
			t.Fatal("Circuit breaker state not found")
		}
		if state != "closed" {
			t.Errorf("Expected initial state 'closed', got '%s'", state)
		}

		// Verify it's enabled
		enabled, ok := stats["enabled"].(bool)
		if !ok {
			t.Fatal("Circuit breaker enabled status not found")
		}
		if !enabled {
			t.Error("Circuit breaker should be enabled")
		}
	})

	t.Run("ScoreCircuitBreaker", func(t *testing.T) {
		stats := scoreCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "Oracle-" + config.AgentScore
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}
	})

	t.Run("CalibrateCircuitBreaker", func(t *testing.T) {
		stats := calibrateCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "Oracle-" + config.AgentCalibrate
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}
	})

	// Verify that circuit breakers are independent (different instances)
	t.Run("IndependentInstances", func(t *testing.T) {
		if analysisCB == scoreCB {
			t.Error("Analysis and score circuit breakers should be different instances")
		}
		if analysisCB == calibrateCB {
			t.Error("Analysis and calibrate circuit breakers should be different instances")
		}
		if scoreCB == calibrateCB {
			t.Error("Score and calibrate circuit breakers should be different instances")
		}
	})

	// Verify that health states are independent
	t.Run("IndependentHealthStates", func(t *testing.T) {
		// All should be healthy initially
		if !analysisCB.IsHealthy() {
			t.Error("Analysis circuit breaker should be healthy initially")
		}
		if !scoreCB.IsHealthy() {
			t.Error("Score circuit breaker should be healthy initially")
		}
		if !calibrateCB.IsHealthy() {
			t.Error("Calibrate circuit breaker should be healthy initially")
		}
	})
}

func TestCircuitBreakerConfigurationMapping(t *testing.T) {
	// Test that configuration values are properly applied to circuit breakers

	customConfig := &config.AgentAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      10,
			Interval:         120 * time.Second,
			Timeout:          90 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.8,
		},
	}

	cb := NewGenerationCircuitBreaker("test", customConfig, nil)

	// Verify circuit breaker was created with custom configuration
	if cb == nil {
		t.Fatal("Circuit breaker should not be nil")
	}

	stats := cb.GetStats()
	if stats == nil {
		t.Fatal("Circuit breaker stats should not be nil")
	}

	// Check that the circuit breaker has the expected agent in its name
	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}

	expectedName := "Oracle-test"
	if name != expectedName {
		t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	// Test that circuit breaker returns nil when disabled

	disabledConfig := &config.AgentAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false, // Disabled
		},
	}

	cb := NewGenerationCircuitBreaker("disabled", disabledConfig, nil)

	// Should return nil when disabled
	if cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}

	// Nil breakers pass calls through and report healthy
	if !cb.IsHealthy() {
		t.Error("Disabled circuit breaker should report healthy")
	}

	stats := cb.GetStats()
	if enabled, ok := stats["enabled"].(bool); !ok || enabled {
		t.Error("Disabled circuit breaker stats should report enabled=false")
	}
}
