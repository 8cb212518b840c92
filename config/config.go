package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the workflow assistant.
type Config struct {
	Index     IndexConfig     `yaml:"index"`
	Sources   SourcesConfig   `yaml:"sources"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
}

// IndexConfig holds chunking and index-location configuration.
type IndexConfig struct {
	Location     string `yaml:"location"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
}

// SourcesConfig holds per-source configuration.
type SourcesConfig struct {
	Document  DocumentConfig  `yaml:"document"`
	Audit     AuditConfig     `yaml:"audit"`
	Ticketing TicketingConfig `yaml:"ticketing"`
}

// DocumentConfig configures the static reference document source.
type DocumentConfig struct {
	Path     string   `yaml:"path"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// AuditConfig configures the audit-trail source.
type AuditConfig struct {
	DBPath string `yaml:"db_path"`
	Limit  int    `yaml:"limit"`
}

// TicketingConfig configures the ticketing source.
type TicketingConfig struct {
	Mode        string `yaml:"mode"` // "mock" or "http"
	BaseURL     string `yaml:"base_url"`
	Username    string `yaml:"username"`
	PasswordEnv string `yaml:"password_env"`
	Query       string `yaml:"query"`
	Limit       int    `yaml:"limit"`
}

// EmbeddingConfig holds embedding-provider configuration.
type EmbeddingConfig struct {
	Provider       string `yaml:"provider"` // "hash", "openai", "ollama"
	Model          string `yaml:"model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	BaseURL        string `yaml:"base_url"`
	Dimension      int    `yaml:"dimension"`
	BatchSize      int    `yaml:"batch_size"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LLMConfig holds answer-generation configuration.
type LLMConfig struct {
	Provider       string `yaml:"provider"` // "static", "openai"
	Model          string `yaml:"model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// DefaultConfig returns the default configuration. The defaults run
// fully offline: hash embeddings, mock tickets, static generation.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Location:     filepath.Join(".workflowai", "index.db"),
			ChunkSize:    800,
			ChunkOverlap: 100,
		},
		Sources: SourcesConfig{
			Document: DocumentConfig{
				Path:     "Workflow_AI.md",
				Includes: []string{"**/*.md", "**/*.txt"},
				Excludes: []string{"**/.git/**", "**/node_modules/**"},
			},
			Audit: AuditConfig{
				DBPath: filepath.Join(".workflowai", "audit.db"),
				Limit:  200,
			},
			Ticketing: TicketingConfig{
				Mode:        "mock",
				PasswordEnv: "TICKETING_PASSWORD",
				Query:       "ORDERBYDESCsys_created_on",
				Limit:       100,
			},
		},
		Embedding: EmbeddingConfig{
			Provider:       "hash",
			Model:          "text-embedding-3-small",
			APIKeyEnv:      "OPENAI_API_KEY",
			Dimension:      256,
			BatchSize:      100,
			TimeoutSeconds: 60,
		},
		LLM: LLMConfig{
			Provider:       "static",
			Model:          "gpt-4o-mini",
			APIKeyEnv:      "OPENAI_API_KEY",
			TimeoutSeconds: 120,
		},
		Retrieve: RetrieveConfig{
			TopK: 3,
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// workflowai.yaml), falling back to defaults.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "workflowai.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
