package ports

import "context"

// EmbeddingEngine generates vector embeddings for text.
type EmbeddingEngine interface {
	// Embed generates embeddings for a single text
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the dimensionality of embeddings
	Dimensions() int

	// Name returns the engine name
	Name() string
}

// CorpusFitter is implemented by engines that learn a vocabulary from the
// question bank before they can embed.
type CorpusFitter interface {
	Fit(corpus []string) error
}

// HealthChecker is implemented by engines backed by a remote service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
