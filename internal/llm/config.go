package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskChatGuided asks one question per turn until it can recommend a coffee.
	TaskChatGuided TaskType = "chat_guided"
	// TaskChatExpert answers free-form coffee questions in depth.
	TaskChatExpert TaskType = "chat_expert"
	// TaskContentDraft drafts catalog copy for shop staff.
	TaskContentDraft TaskType = "content_draft"
)

type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig

	// OpenAI and Azure OpenAI.
	APIKey          string
	BaseURL         string
	AzureDeployment string
	AzureAPIVersion string
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  20000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskChatGuided:   {Temperature: 0.5, MaxTokens: 1024, TimeoutMs: 20000},
			TaskChatExpert:   {Temperature: 0.5, MaxTokens: 2048, TimeoutMs: 45000},
			TaskContentDraft: {Temperature: 0.5, MaxTokens: 1024, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads LLM configuration from ROASTERY_LLM_* environment
// variables, falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("ROASTERY_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ROASTERY_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ROASTERY_LLM_PROVIDER"); v != "" {
		switch p := Provider(strings.ToLower(v)); p {
		case ProviderOllama, ProviderOpenAI:
			cfg.Provider = p
		}
	}
	if cfg.Provider == ProviderOpenAI {
		cfg.Model = "gpt-4o-mini"
	}
	if v := os.Getenv("ROASTERY_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("ROASTERY_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("ROASTERY_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("ROASTERY_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	cfg.APIKey = os.Getenv("ROASTERY_LLM_API_KEY")
	cfg.BaseURL = os.Getenv("ROASTERY_LLM_BASE_URL")
	cfg.AzureDeployment = os.Getenv("ROASTERY_LLM_AZURE_DEPLOYMENT")
	cfg.AzureAPIVersion = os.Getenv("ROASTERY_LLM_AZURE_API_VERSION")

	applyTaskTimeoutEnv(&cfg, TaskChatGuided, "ROASTERY_LLM_CHAT_GUIDED_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskChatExpert, "ROASTERY_LLM_CHAT_EXPERT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskContentDraft, "ROASTERY_LLM_CONTENT_TIMEOUT_MS")

	return cfg
}

// UseAzure reports whether requests go to an Azure OpenAI deployment.
func (c LLMConfig) UseAzure() bool {
	return c.Provider == ProviderOpenAI && c.BaseURL != "" && c.AzureDeployment != ""
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
