// Package config provides configuration management for symgen.
// It loads settings from environment variables with the SYMGEN_ prefix
// and provides sensible defaults for all configuration options.
//
// The generation vocabulary (symptom/body-part lists and demographic
// value sets) can additionally be loaded from a YAML file; the built-in
// default vocabulary is used when no file is configured.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/medsynth/symgen/pkg/types"
)

// Config holds all configuration settings for the symgen application.
type Config struct {
	Server  ServerConfig
	Oracle  OracleConfig
	Dataset DatasetConfig
	Prompt  PromptConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int    // Server port (default: 6470)
	Host string // Server host (default: 127.0.0.1)
}

// OracleConfig contains text-generation backend configuration.
type OracleConfig struct {
	Provider        string // Oracle provider: ollama, openai, anthropic (default: ollama)
	OllamaURL       string // Ollama API URL (default: http://localhost:11434)
	OllamaModel     string // Ollama model for completions (default: llama3.2:1b)
	EmbeddingModel  string // Ollama model for embeddings (default: nomic-embed-text)
	OpenAIAPIKey    string // OpenAI API key
	OpenAIModel     string // OpenAI model name (default: gpt-4o-mini)
	AnthropicAPIKey string // Anthropic API key
	AnthropicModel  string // Anthropic model name (default: claude-haiku-4-5-20251001)
}

// DatasetConfig contains dataset sink configuration.
type DatasetConfig struct {
	DataPath    string // Directory for generated flat files (default: ./data)
	SQLitePath  string // SQLite dataset database path ("" disables the store)
	PostgresDSN string // Postgres dataset DSN ("" disables the store)
	EmbedText   bool   // Embed record text when storing to Postgres (default: false)
}

// PromptConfig contains defaults for dialogue prompt construction.
type PromptConfig struct {
	Register string // Default language register (default: standard)
	Tone     string // Default tone (default: neutral)
}

// LoadConfig loads configuration from environment variables with
// sensible defaults. All environment variables use the SYMGEN_ prefix.
func LoadConfig() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("SYMGEN_PORT", 6470),
			Host: getEnv("SYMGEN_HOST", "127.0.0.1"),
		},
		Oracle: OracleConfig{
			Provider:        getEnv("SYMGEN_ORACLE_PROVIDER", "ollama"),
			OllamaURL:       getEnv("SYMGEN_OLLAMA_URL", "http://localhost:11434"),
			OllamaModel:     getEnv("SYMGEN_OLLAMA_MODEL", "llama3.2:1b"),
			EmbeddingModel:  getEnv("SYMGEN_EMBEDDING_MODEL", "nomic-embed-text"),
			OpenAIAPIKey:    getEnv("SYMGEN_OPENAI_API_KEY", ""),
			OpenAIModel:     getEnv("SYMGEN_OPENAI_MODEL", "gpt-4o-mini"),
			AnthropicAPIKey: getEnv("SYMGEN_ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getEnv("SYMGEN_ANTHROPIC_MODEL", "claude-haiku-4-5-20251001"),
		},
		Dataset: DatasetConfig{
			DataPath:    getEnv("SYMGEN_DATA_PATH", "./data"),
			SQLitePath:  getEnv("SYMGEN_SQLITE_PATH", ""),
			PostgresDSN: getEnv("SYMGEN_POSTGRES_DSN", ""),
			EmbedText:   getEnvBool("SYMGEN_EMBED_TEXT", false),
		},
		Prompt: PromptConfig{
			Register: getEnv("SYMGEN_REGISTER", "standard"),
			Tone:     getEnv("SYMGEN_TONE", "neutral"),
		},
	}, nil
}

// LoadVocabulary reads a generation vocabulary from a YAML file.
// An empty path returns the built-in default vocabulary. Fields left
// empty in the file fall back to their defaults, so a file may
// override only the symptom list.
func LoadVocabulary(path string) (types.Vocabulary, error) {
	vocab := types.DefaultVocabulary()
	if path == "" {
		return vocab, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Vocabulary{}, fmt.Errorf("config: failed to read vocabulary file: %w", err)
	}

	var loaded types.Vocabulary
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return types.Vocabulary{}, fmt.Errorf("config: failed to parse vocabulary file %s: %w", path, err)
	}

	if len(loaded.Symptoms) > 0 {
		vocab.Symptoms = loaded.Symptoms
	}
	if len(loaded.BodyParts) > 0 {
		vocab.BodyParts = loaded.BodyParts
	}
	if len(loaded.Ages) > 0 {
		vocab.Ages = loaded.Ages
	}
	if len(loaded.Genders) > 0 {
		vocab.Genders = loaded.Genders
	}
	return vocab, nil
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value.
// If the environment variable exists but cannot be parsed as an integer,
// it returns the default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
// It recognizes "true", "1", "yes" as true and "false", "0", "no" as false.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch value {
		case "true", "1", "yes", "True", "TRUE", "Yes", "YES":
			return true
		case "false", "0", "no", "False", "FALSE", "No", "NO":
			return false
		}
	}
	return defaultValue
}
