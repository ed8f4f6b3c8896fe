package llm

import (
	"fmt"

	"github.com/medsynth/symgen/internal/config"
)

// NewTextGenerator creates the appropriate TextGenerator for the
// configured oracle provider.
func NewTextGenerator(cfg config.OracleConfig) (TextGenerator, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(OpenAIConfig{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel}), nil
	case "anthropic":
		return NewAnthropicClient(AnthropicConfig{APIKey: cfg.AnthropicAPIKey, Model: cfg.AnthropicModel}), nil
	case "ollama", "":
		return NewOllamaClient(OllamaConfig{BaseURL: cfg.OllamaURL, Model: cfg.OllamaModel}), nil
	default:
		return nil, fmt.Errorf("unsupported oracle provider: %q", cfg.Provider)
	}
}

// NewEmbeddingGenerator creates an EmbeddingGenerator for the
// configured provider. Returns (nil, nil) for providers without an
// embedding endpoint; the Postgres store treats a nil generator as
// "store records without embeddings".
func NewEmbeddingGenerator(cfg config.OracleConfig) (EmbeddingGenerator, error) {
	switch cfg.Provider {
	case "ollama", "":
		model := cfg.EmbeddingModel
		if model == "" {
			model = "nomic-embed-text"
		}
		return NewOllamaClient(OllamaConfig{BaseURL: cfg.OllamaURL, Model: model}), nil
	default:
		return nil, nil
	}
}
