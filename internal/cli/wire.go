package cli

import (
	"fmt"
	"os"
	"time"

	"workflowai/config"
	"workflowai/internal/adapter/embedding"
	"workflowai/internal/adapter/llm"
	"workflowai/internal/adapter/ticketing"
	"workflowai/internal/port"
)

func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	e := cfg.Embedding
	timeout := time.Duration(e.TimeoutSeconds) * time.Second

	switch e.Provider {
	case "", "hash":
		return embedding.NewHashEmbedder(e.Dimension), nil
	case "openai":
		if e.BaseURL != "" {
			return embedding.NewOpenAICompatibleEmbedder(e.APIKeyEnv, e.Model, e.BaseURL, timeout)
		}
		return embedding.NewOpenAIEmbedder(e.APIKeyEnv, e.Model, timeout)
	case "ollama":
		return embedding.NewOllamaEmbedder(e.Model, e.BaseURL, timeout)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", e.Provider)
	}
}

func newGenerator(cfg *config.Config) (port.Generator, error) {
	l := cfg.LLM
	switch l.Provider {
	case "", "static":
		return llm.NewStaticGenerator(), nil
	case "openai":
		return llm.NewOpenAIGenerator(l.APIKeyEnv, l.Model, l.BaseURL, time.Duration(l.TimeoutSeconds)*time.Second)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", l.Provider)
	}
}

func newTicketClient(cfg *config.Config) (port.TicketSource, error) {
	tk := cfg.Sources.Ticketing
	switch tk.Mode {
	case "", "mock":
		return ticketing.NewMock(), nil
	case "http":
		return ticketing.NewClient(tk.BaseURL, tk.Username, os.Getenv(tk.PasswordEnv), 30*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown ticketing mode: %s", tk.Mode)
	}
}
