// Package embedding provides the engines that turn answers into vectors.
package embedding

import (
	"context"
	"fmt"

	"interviewprep/internal/config"
	"interviewprep/internal/logging"
	"interviewprep/ports"
)

// NewEngine builds the engine selected by EMBEDDING_PROVIDER
func NewEngine(ctx context.Context, cfg config.EmbeddingConfig, logger *logging.Logger) (ports.EmbeddingEngine, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	switch cfg.Provider {
	case "", "tfidf":
		return NewTFIDFEngine(), nil
	case "ollama":
		return NewOllamaEngine(cfg.OllamaEndpoint, cfg.OllamaModel, cfg.Timeout)
	case "genai":
		return NewGenAIEngine(ctx, cfg.GenAIAPIKey, cfg.GenAIModel, cfg.TaskType, logger)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
