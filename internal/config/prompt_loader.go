package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// loadPromptsFromFiles loads custom prompts from external files if file
// paths are specified in any agent section
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	for _, agent := range AgentNames {
		prompts := c.agentSection(agent).Prompts

		var loaded LoadedAgentPrompts

		if prompts.SystemFile != "" {
			content, err := loadPromptFromFile(prompts.SystemFile, "system", agent)
			if err != nil {
				return fmt.Errorf("failed to load %s system prompt: %w", agent, err)
			}
			loaded.System = content
		}

		if prompts.UserFile != "" {
			content, err := loadPromptFromFile(prompts.UserFile, "user", agent)
			if err != nil {
				return fmt.Errorf("failed to load %s user prompt: %w", agent, err)
			}
			loaded.User = content
		}

		if loaded.System != "" || loaded.User != "" {
			setLoadedPrompts(agent, loaded)
		}
	}

	c.logPromptLoadingSummary()

	return nil
}

// ReloadPromptFiles re-reads all configured prompt files and replaces
// the loaded registry entries. Called by the prompt watcher on change.
func (c *Config) ReloadPromptFiles() error {
	return c.loadPromptsFromFiles()
}

// PromptFiles returns all configured prompt file paths, deduplicated.
// The prompt watcher watches these for changes.
func (c *Config) PromptFiles() []string {
	seen := make(map[string]bool)
	var files []string
	for _, agent := range AgentNames {
		prompts := c.agentSection(agent).Prompts
		for _, path := range []string{prompts.SystemFile, prompts.UserFile} {
			if path != "" && !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}
	return files
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, promptType, agent string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", agent, promptType, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", agent, promptType, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", agent, promptType, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", agent, promptType, absPath)
	}

	// Log successful loading
	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		agent, promptType, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	validateFile := func(filePath, promptType, agent string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", agent, promptType, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", agent, promptType, absPath))
		}
	}

	for _, agent := range AgentNames {
		prompts := c.agentSection(agent).Prompts
		validateFile(prompts.SystemFile, "system", agent)
		validateFile(prompts.UserFile, "user", agent)
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptCount := 0
	for _, agent := range AgentNames {
		loaded := GetPromptsForAgent(agent)
		if loaded.System != "" {
			log.Printf("[CONFIG] %s system prompt: loaded from file", agent)
			promptCount++
		}
		if loaded.User != "" {
			log.Printf("[CONFIG] %s user prompt: loaded from file", agent)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
