package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	resetLoadedPrompts()

	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Create test prompt files
	systemPromptContent := "Test system prompt for job analysis"
	userPromptContent := "Test user prompt template: %s and %s"

	systemPromptFile := filepath.Join(tempDir, "system.analysis.md")
	userPromptFile := filepath.Join(tempDir, "user.analysis.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}

	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	// Create test config
	config := &Config{
		Oracle: OracleConfig{
			JobAnalysis: AgentAIConfig{
				Prompts: AgentPrompts{
					SystemFile: systemPromptFile,
					UserFile:   userPromptFile,
				},
			},
		},
	}

	// Test file loading
	err := config.loadPromptsFromFiles()
	if err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	// Verify content was loaded into the shared registry
	loaded := GetPromptsForAgent(AgentJobAnalysis)

	if loaded.System != systemPromptContent {
		t.Errorf("Expected loaded system prompt content '%s', got '%s'",
			systemPromptContent, loaded.System)
	}

	if loaded.User != userPromptContent {
		t.Errorf("Expected loaded user prompt content '%s', got '%s'",
			userPromptContent, loaded.User)
	}

	// Verify file paths are preserved
	if config.Oracle.JobAnalysis.Prompts.SystemFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}

	if config.Oracle.JobAnalysis.Prompts.UserFile != userPromptFile {
		t.Error("Expected user prompt file path to be preserved")
	}
}

func TestValidatePromptFiles(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Create a valid test file
	validFile := filepath.Join(tempDir, "valid.md")
	if err := os.WriteFile(validFile, []byte("Valid content"), 0600); err != nil {
		t.Fatalf("Failed to create valid test file: %v", err)
	}

	// Test with valid file
	config := &Config{
		Oracle: OracleConfig{
			Quality: AgentAIConfig{
				Prompts: AgentPrompts{
					SystemFile: validFile,
				},
			},
		},
	}

	err := config.validatePromptFiles()
	if err != nil {
		t.Errorf("Expected validation to pass for valid file, got error: %v", err)
	}

	// Test with non-existent file
	config.Oracle.Quality.Prompts.SystemFile = filepath.Join(tempDir, "nonexistent.md")

	err = config.validatePromptFiles()
	if err == nil {
		t.Error("Expected validation to fail for non-existent file")
	}
}

func TestLoadPromptFromFile(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Test with valid file
	content := "Test prompt content"
	testFile := filepath.Join(tempDir, "test.md")
	if err := os.WriteFile(testFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loadedContent, err := loadPromptFromFile(testFile, "system", AgentJobAnalysis)
	if err != nil {
		t.Fatalf("Failed to load prompt from file: %v", err)
	}

	if loadedContent != content {
		t.Errorf("Expected content '%s', got '%s'", content, loadedContent)
	}

	// Test with empty file
	emptyFile := filepath.Join(tempDir, "empty.md")
	if err := os.WriteFile(emptyFile, []byte(""), 0600); err != nil {
		t.Fatalf("Failed to create empty test file: %v", err)
	}

	_, err = loadPromptFromFile(emptyFile, "system", AgentJobAnalysis)
	if err == nil {
		t.Error("Expected error for empty file")
	}

	// Test with non-existent file
	_, err = loadPromptFromFile(filepath.Join(tempDir, "nonexistent.md"), "system", AgentJobAnalysis)
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestPromptFiles(t *testing.T) {
	config := &Config{
		Oracle: OracleConfig{
			JobAnalysis: AgentAIConfig{
				Prompts: AgentPrompts{
					SystemFile: "/prompts/analysis.system.md",
					UserFile:   "/prompts/analysis.user.md",
				},
			},
			Score: AgentAIConfig{
				Prompts: AgentPrompts{
					// Shared file, must be deduplicated
					SystemFile: "/prompts/analysis.system.md",
				},
			},
		},
	}

	files := config.PromptFiles()
	if len(files) != 2 {
		t.Fatalf("Expected 2 unique prompt files, got %d: %v", len(files), files)
	}
}

func TestPromptFileIntegration(t *testing.T) {
	resetLoadedPrompts()

	// Create temporary directory and config file
	tempDir := t.TempDir()

	// Create test prompt files
	systemPrompt := "Custom system prompt for testing"
	userPrompt := "Custom user prompt: %s %s"

	systemFile := filepath.Join(tempDir, "system.md")
	userFile := filepath.Join(tempDir, "user.md")

	if err := os.WriteFile(systemFile, []byte(systemPrompt), 0600); err != nil {
		t.Fatalf("Failed to create system prompt file: %v", err)
	}

	if err := os.WriteFile(userFile, []byte(userPrompt), 0600); err != nil {
		t.Fatalf("Failed to create user prompt file: %v", err)
	}

	// Create a minimal config that would load these files
	config := &Config{
		Oracle: OracleConfig{
			Provider:    "gemini",
			Model:       "test-model",
			Timeout:     60 * time.Second,
			APIKey:      "test-key",
			MaxRetries:  3,
			Temperature: 0.3,
			Calibrate: AgentAIConfig{
				Prompts: AgentPrompts{
					SystemFile: systemFile,
					UserFile:   userFile,
				},
			},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "html", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
	}

	// Apply fallbacks (simulating the full config loading process)
	config.applyFallbacks()

	// Validate and load prompt files
	if err := config.validatePromptFiles(); err != nil {
		t.Fatalf("Prompt file validation failed: %v", err)
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	// Verify the prompts were loaded correctly into the shared registry
	loaded := GetPromptsForAgent(AgentCalibrate)

	if loaded.System != systemPrompt {
		t.Errorf("Expected system prompt '%s', got '%s'", systemPrompt, loaded.System)
	}

	if loaded.User != userPrompt {
		t.Errorf("Expected user prompt '%s', got '%s'", userPrompt, loaded.User)
	}

	// Agents without file overrides stay empty in the registry
	if other := GetPromptsForAgent(AgentOptimize); other.System != "" || other.User != "" {
		t.Errorf("Expected no loaded prompts for %s, got %+v", AgentOptimize, other)
	}
}
