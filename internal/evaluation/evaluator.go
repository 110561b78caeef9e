// Package evaluation scores a typed answer against the reference answer.
package evaluation

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"interviewprep/domain/quiz"
	"interviewprep/internal/errors"
	"interviewprep/internal/logging"
	"interviewprep/ports"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Evaluation is the outcome of comparing one response with its reference
type Evaluation struct {
	Similarity float64    `json:"similarity"`
	Level      quiz.Level `json:"level"`
	Engine     string     `json:"engine"`
}

// Feedback returns the variant's sentence for this evaluation's level
func (e Evaluation) Feedback(v quiz.Variant) string {
	return v.FeedbackFor(e.Level)
}

// Evaluator embeds responses and references and classifies their cosine
// similarity. Reference vectors are cached by text.
type Evaluator struct {
	engine ports.EmbeddingEngine
	logger *logging.Logger

	mu    sync.RWMutex
	cache map[string][]float32
}

// NewEvaluator creates an evaluator over the given engine
func NewEvaluator(engine ports.EmbeddingEngine, logger *logging.Logger) *Evaluator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Evaluator{
		engine: engine,
		logger: logger,
		cache:  make(map[string][]float32),
	}
}

// EngineName identifies the embedding engine in use
func (e *Evaluator) EngineName() string {
	return e.engine.Name()
}

// Prepare fits engines that learn from the corpus and drops cached
// reference vectors. It runs on startup and on every bank reload.
func (e *Evaluator) Prepare(corpus []string) error {
	if fitter, ok := e.engine.(ports.CorpusFitter); ok {
		if err := fitter.Fit(corpus); err != nil {
			return errors.Wrap(err, "failed to fit embedding engine")
		}
	}
	e.mu.Lock()
	e.cache = make(map[string][]float32)
	e.mu.Unlock()
	return nil
}

// Warm embeds every distinct non-blank reference in one batch
func (e *Evaluator) Warm(ctx context.Context, references []string) error {
	var pending []string
	seen := make(map[string]bool)
	e.mu.RLock()
	for _, ref := range references {
		if strings.TrimSpace(ref) == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		if _, ok := e.cache[ref]; !ok {
			pending = append(pending, ref)
		}
	}
	e.mu.RUnlock()
	if len(pending) == 0 {
		return nil
	}

	vecs, err := e.engine.EmbedBatch(ctx, pending)
	if err != nil {
		return errors.ExternalServiceError("embedding", err)
	}
	if len(vecs) != len(pending) {
		return errors.ExternalServiceError("embedding",
			fmt.Errorf("engine returned %d vectors for %d references", len(vecs), len(pending)))
	}

	e.mu.Lock()
	for i, ref := range pending {
		e.cache[ref] = vecs[i]
	}
	e.mu.Unlock()
	e.logger.Debug("[Evaluator] warmed %d reference vectors", len(pending))
	return nil
}

// Evaluate scores response against reference. A blank response scores 0
// without calling the engine.
func (e *Evaluator) Evaluate(ctx context.Context, response, reference string) (Evaluation, error) {
	result := Evaluation{Engine: e.engine.Name()}
	if strings.TrimSpace(response) == "" || strings.TrimSpace(reference) == "" {
		result.Level = quiz.Classify(0)
		return result, nil
	}

	var responseVec, referenceVec []float32
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vec, err := e.engine.Embed(gctx, response)
		if err != nil {
			return err
		}
		responseVec = vec
		return nil
	})
	g.Go(func() error {
		vec, err := e.reference(gctx, reference)
		if err != nil {
			return err
		}
		referenceVec = vec
		return nil
	})
	if err := g.Wait(); err != nil {
		return Evaluation{}, errors.ExternalServiceError("embedding", err)
	}

	similarity, err := Cosine(responseVec, referenceVec)
	if err != nil {
		return Evaluation{}, errors.Wrap(err, "failed to compare embeddings")
	}

	result.Similarity = similarity
	result.Level = quiz.Classify(similarity)
	return result, nil
}

func (e *Evaluator) reference(ctx context.Context, text string) ([]float32, error) {
	e.mu.RLock()
	vec, ok := e.cache[text]
	e.mu.RUnlock()
	if ok {
		return vec, nil
	}

	vec, err := e.engine.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.cache[text] = vec
	e.mu.Unlock()
	return vec, nil
}

// Cosine returns the cosine similarity of a and b. An empty or zero
// magnitude vector yields 0; mismatched lengths are an error.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.InvalidInput(fmt.Sprintf("embedding dimensions differ: %d vs %d", len(a), len(b)))
	}
	if len(a) == 0 {
		return 0, nil
	}

	x, y := widen(a), widen(b)
	normX, normY := floats.Norm(x, 2), floats.Norm(y, 2)
	if normX == 0 || normY == 0 {
		return 0, nil
	}

	sim := floats.Dot(x, y) / (normX * normY)
	if math.IsNaN(sim) {
		return sim, nil
	}
	return math.Max(-1, math.Min(1, sim)), nil
}

func widen(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
