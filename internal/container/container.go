package container

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"interviewprep/adapters/embedding"
	"interviewprep/adapters/excel"
	"interviewprep/adapters/memory"
	"interviewprep/adapters/postgres"
	"interviewprep/adapters/sheets"
	"interviewprep/app"
	"interviewprep/domain/quiz"
	"interviewprep/internal/api"
	"interviewprep/internal/config"
	"interviewprep/internal/errors"
	"interviewprep/internal/evaluation"
	"interviewprep/internal/keywords"
	"interviewprep/internal/logging"
	"interviewprep/internal/migration"
	"interviewprep/internal/speech"
	"interviewprep/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *logging.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories and stores
	Sessions ports.SessionStore
	Attempts ports.AttemptRepository

	// Question bank and scoring
	Source    ports.QuestionSource
	Catalog   *app.Catalog
	Engine    ports.EmbeddingEngine
	Evaluator *evaluation.Evaluator
	Keywords  *keywords.Store

	// Presentation
	Variant     quiz.Variant
	Speaker     speech.Speaker
	QuizService *app.QuizService
	API         http.Handler

	stopSweep chan struct{}
	sweepWG   sync.WaitGroup
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// Init builds every component and loads the question bank, the embedding
// engine and the keyword list concurrently. A question bank that fails to
// load is logged and reported by the page; it does not stop startup.
func (c *Container) Init(ctx context.Context) error {
	if err := c.initStorage(ctx); err != nil {
		return err
	}

	variant, err := c.loadVariant()
	if err != nil {
		return err
	}
	c.Variant = variant
	c.Speaker = speech.NewSpeaker(c.Config.Speech.Enabled, c.Config.Speech.Rate)

	source, err := c.newSource(ctx)
	if err != nil {
		return err
	}
	c.Source = source
	c.Catalog = app.NewCatalog(source, c.Logger.Named("catalog"))
	c.Keywords = keywords.NewStore(c.Config.Keywords.File, c.Logger.Named("keywords"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		engine, err := embedding.NewEngine(gctx, c.Config.Embedding, c.Logger.Named("embedding"))
		if err != nil {
			return errors.Wrap(err, "failed to create embedding engine")
		}
		if hc, ok := engine.(ports.HealthChecker); ok {
			if err := hc.HealthCheck(gctx); err != nil {
				c.Logger.Warn("[Container] %s is not reachable yet: %v", engine.Name(), err)
			}
		}
		c.Engine = engine
		return nil
	})
	g.Go(func() error {
		if err := c.Keywords.Load(gctx); err != nil {
			return errors.Wrap(err, "failed to load keyword list")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.Evaluator = evaluation.NewEvaluator(c.Engine, c.Logger.Named("evaluation"))
	c.Catalog.OnReload(c.prepareEvaluator)

	if err := c.Catalog.Load(ctx); err != nil {
		c.Logger.Error("[Container] question bank not loaded: %v", err)
	}

	c.QuizService = app.NewQuizService(c.Catalog, c.Sessions, c.Evaluator, c.Keywords, c.Attempts, c.Variant, c.Logger.Named("quiz"))
	c.API = api.NewRouter(c.QuizService, c.Logger.Named("api"))

	c.startWatchers(ctx)

	c.Logger.Info("[Container] initialized: source=%s engine=%s variant=%s", c.Source.Name(), c.Engine.Name(), c.Variant.Name)
	return nil
}

// prepareEvaluator runs before a reloaded bank is published. Fitting is
// required; warming the reference cache is best effort.
func (c *Container) prepareEvaluator(ctx context.Context, bank *quiz.Bank) error {
	if err := c.Evaluator.Prepare(bank.Corpus()); err != nil {
		return err
	}
	answers := make([]string, 0, bank.Len())
	for _, r := range bank.Records() {
		answers = append(answers, r.Answer)
	}
	if err := c.Evaluator.Warm(ctx, answers); err != nil {
		c.Logger.Warn("[Container] reference answers not cached: %v", err)
	}
	return nil
}

// initStorage opens the database when configured and falls back to memory
// otherwise
func (c *Container) initStorage(ctx context.Context) error {
	if c.Config.Database.URL == "" {
		c.Sessions = memory.NewSessionStore(c.Config.Session.TTL, c.Logger.Named("sessions"))
		c.Attempts = memory.NewAttemptRepository()
		return nil
	}

	db, err := sqlx.ConnectContext(ctx, c.Config.Database.Driver, c.Config.Database.URL)
	if err != nil {
		return errors.DatabaseError("failed to connect to database", err)
	}
	if c.Config.Database.Driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return errors.Wrap(err, "database migration failed")
	}
	c.DB = db

	sessions := postgres.NewSessionStore(db, c.Config.Session.TTL, c.Logger.Named("sessions"))
	c.Sessions = sessions
	c.Attempts = postgres.NewAttemptRepository(db)
	c.startSweeper(sessions)

	c.Logger.Info("[Container] sessions and attempt history stored in %s", c.Config.Database.Driver)
	return nil
}

// startSweeper removes idle SQL sessions on the same cadence as the memory
// store's janitor
func (c *Container) startSweeper(sessions *postgres.SessionStore) {
	interval := c.Config.Session.TTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	c.stopSweep = make(chan struct{})
	c.sweepWG.Add(1)
	go func() {
		defer c.sweepWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stopSweep:
				return
			case <-ticker.C:
				if _, err := sessions.Sweep(context.Background()); err != nil {
					c.Logger.Warn("[Container] session sweep failed: %v", err)
				}
			}
		}
	}()
}

func (c *Container) loadVariant() (quiz.Variant, error) {
	deck, err := c.loadDeck()
	if err != nil {
		return quiz.Variant{}, err
	}
	variant, ok := deck.Variant(c.Config.Copy.Variant)
	if !ok {
		return quiz.Variant{}, errors.ConfigInvalid(fmt.Sprintf("unknown COPY_VARIANT %q, have %v", c.Config.Copy.Variant, deck.Names()))
	}
	return variant, nil
}

func (c *Container) loadDeck() (*quiz.Deck, error) {
	if c.Config.Copy.DeckFile == "" {
		return quiz.DefaultDeck()
	}
	f, err := os.Open(c.Config.Copy.DeckFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open copy deck")
	}
	defer f.Close()
	deck, err := quiz.ParseDeck(f)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return deck, nil
}

func (c *Container) newSource(ctx context.Context) (ports.QuestionSource, error) {
	q := c.Config.Questions
	switch q.Source {
	case "sheets":
		return sheets.NewQuestionSource(ctx, sheets.Config{
			SpreadsheetID:   q.SpreadsheetID,
			Range:           q.Range,
			CredentialsFile: q.CredentialsFile,
			APIKey:          q.APIKey,
		}, c.Logger.Named("sheets"))
	default:
		excelConfig := excel.DefaultExcelConfig()
		excelConfig.FilePath = q.File
		excelConfig.SheetName = q.Sheet
		return excel.NewQuestionSource(excelConfig, c.Logger.Named("excel")), nil
	}
}

// startWatchers reloads the question file and keyword list on change. A
// watcher that cannot start only costs hot reload.
func (c *Container) startWatchers(ctx context.Context) {
	if c.Config.Questions.Watch {
		if err := c.Catalog.Watch(ctx); err != nil {
			c.Logger.Warn("[Container] question file not watched: %v", err)
		}
	}
	if c.Config.Keywords.Watch && c.Config.Keywords.File != "" {
		if err := c.Keywords.Watch(ctx); err != nil {
			c.Logger.Warn("[Container] keyword file not watched: %v", err)
		}
	}
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.Info("[Container] shutting down")

	if c.stopSweep != nil {
		close(c.stopSweep)
		c.sweepWG.Wait()
		c.stopSweep = nil
	}

	var errs []error
	if c.Catalog != nil {
		errs = append(errs, c.Catalog.Close())
	}
	if c.Keywords != nil {
		errs = append(errs, c.Keywords.Close())
	}
	if closer, ok := c.Sessions.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
