package embedding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"interviewprep/internal/logging"

	"google.golang.org/genai"
)

const (
	genaiMaxAttempts = 3
	genaiBaseBackoff = 500 * time.Millisecond
)

// GenAIEngine generates embeddings using the Gemini API
type GenAIEngine struct {
	client   *genai.Client
	model    string
	taskType string
	logger   *logging.Logger
}

// NewGenAIEngine creates a new GenAI embedding engine
func NewGenAIEngine(ctx context.Context, apiKey, model, taskType string, logger *logging.Logger) (*GenAIEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-embedding-001"
	}
	if logger == nil {
		logger = logging.Nop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIEngine{
		client:   client,
		model:    model,
		taskType: ParseTaskType(taskType),
		logger:   logger,
	}, nil
}

// ParseTaskType normalises GENAI_TASK_TYPE. Unknown values select semantic
// similarity.
func ParseTaskType(taskType string) string {
	switch t := strings.ToUpper(strings.TrimSpace(taskType)); t {
	case "CLASSIFICATION", "CLUSTERING", "RETRIEVAL_DOCUMENT", "RETRIEVAL_QUERY",
		"QUESTION_ANSWERING", "FACT_VERIFICATION", "SEMANTIC_SIMILARITY":
		return t
	default:
		return "SEMANTIC_SIMILARITY"
	}
}

// Embed generates an embedding for a single text
func (e *GenAIEngine) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch sends every text in one request, retrying transient failures
func (e *GenAIEngine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	var lastErr error
	for attempt := 1; attempt <= genaiMaxAttempts; attempt++ {
		result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
			TaskType: e.taskType,
		})
		if err == nil {
			if len(result.Embeddings) != len(texts) {
				return nil, fmt.Errorf("GenAI returned %d embeddings for %d texts", len(result.Embeddings), len(texts))
			}
			out := make([][]float32, len(result.Embeddings))
			for i, emb := range result.Embeddings {
				out[i] = emb.Values
			}
			return out, nil
		}

		lastErr = err
		if attempt == genaiMaxAttempts {
			break
		}
		e.logger.Warn("[GenAI] embed attempt %d/%d failed: %v", attempt, genaiMaxAttempts, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(genaiBaseBackoff * time.Duration(attempt)):
		}
	}

	return nil, fmt.Errorf("GenAI embed failed after %d attempts: %w", genaiMaxAttempts, lastErr)
}

// Dimensions of gemini-embedding-001 at its default output size
func (e *GenAIEngine) Dimensions() int {
	return 3072
}

// Name returns the engine name
func (e *GenAIEngine) Name() string {
	return fmt.Sprintf("genai:%s", e.model)
}
