package internal

import (
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LLM providers. Both speak the OpenAI-compatible chat completions API;
// ollama serves it locally without an API key.
const (
	LLMProviderOllama = "ollama"
	LLMProviderOpenAI = "openai"
)

// Search providers.
const (
	SearchProviderBrave = "brave"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Vault  VaultConfig       `yaml:"vault"`
	LLM    LLMConfig         `yaml:"llm"`
	Search SearchConfig      `yaml:"search"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	return c.Search.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// VaultConfig holds the path to the tracker vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// LLMConfig holds the text-completion endpoint configuration.
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float64       `yaml:"temperature"`
}

// Validate validates the LLM configuration.
func (c *LLMConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.Required, validation.In(LLMProviderOllama, LLMProviderOpenAI)),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.Temperature, validation.Min(0.0), validation.Max(2.0)),
	)
}

// SearchConfig holds the web search provider configuration.
//
// APIKey is optional: an empty key switches the research agent to a stub
// searcher that returns a single placeholder result per query.
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.Required, validation.In(SearchProviderBrave)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// SearchEnabled returns true when a real search provider is usable.
func (c *SearchConfig) SearchEnabled() bool {
	return c.APIKey != ""
}

// NewDefaultConfig returns a new Config with sensible default values.
// These defaults cover a local ollama install with no config file at all.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		LLM: LLMConfig{
			Provider:    LLMProviderOllama,
			Model:       "llama3.1:8b",
			BaseURL:     "http://localhost:11434/v1",
			Timeout:     120 * time.Second,
			Temperature: 0.7,
		},
		Search: SearchConfig{
			Provider: SearchProviderBrave,
			Timeout:  15 * time.Second,
		},
	}
}
