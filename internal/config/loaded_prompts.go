package config

import (
	"sync"
)

var (
	loadedPromptsMu sync.RWMutex
	loadedPrompts   = make(map[string]LoadedAgentPrompts)
)

// LoadedAgentPrompts holds prompt content loaded from files for one agent.
// File-sourced prompts take priority over inline config values.
type LoadedAgentPrompts struct {
	System string
	User   string
}

// GetPromptsForAgent returns a copy of the loaded prompts for an agent
// identifier. Safe for concurrent use with the prompt watcher, which
// replaces entries on file change.
func GetPromptsForAgent(agent string) LoadedAgentPrompts {
	loadedPromptsMu.RLock()
	defer loadedPromptsMu.RUnlock()
	return loadedPrompts[agent]
}

// setLoadedPrompts replaces the loaded prompts for an agent
func setLoadedPrompts(agent string, prompts LoadedAgentPrompts) {
	loadedPromptsMu.Lock()
	defer loadedPromptsMu.Unlock()
	loadedPrompts[agent] = prompts
}

// resetLoadedPrompts clears all loaded prompts. Used by tests.
func resetLoadedPrompts() {
	loadedPromptsMu.Lock()
	defer loadedPromptsMu.Unlock()
	loadedPrompts = make(map[string]LoadedAgentPrompts)
}
