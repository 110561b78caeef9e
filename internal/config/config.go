package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"interviewprep/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Questions QuestionsConfig
	Embedding EmbeddingConfig
	Keywords  KeywordsConfig
	Copy      CopyConfig
	Speech    SpeechConfig
	Session   SessionConfig
	Database  DatabaseConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// QuestionsConfig selects where the question bank is read from
type QuestionsConfig struct {
	Source string // "file" or "sheets"

	File  string
	Sheet string // xlsx only; empty means the first sheet
	Watch bool

	SpreadsheetID   string
	Range           string
	CredentialsFile string
	APIKey          string
}

// EmbeddingConfig holds embedding engine settings
type EmbeddingConfig struct {
	Provider string // "tfidf", "ollama" or "genai"

	OllamaEndpoint string
	OllamaModel    string

	GenAIAPIKey string
	GenAIModel  string
	TaskType    string

	Timeout time.Duration
}

// KeywordsConfig points at the job related terms list
type KeywordsConfig struct {
	File  string
	Watch bool
}

// CopyConfig picks the page variant
type CopyConfig struct {
	Variant  string
	DeckFile string
}

// SpeechConfig controls browser text-to-speech
type SpeechConfig struct {
	Enabled bool
	Rate    float64
}

// SessionConfig controls the in-memory session store
type SessionConfig struct {
	TTL        time.Duration
	CookieName string
}

// DatabaseConfig holds the optional attempt history database
type DatabaseConfig struct {
	URL    string
	Driver string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Questions: *loadQuestionsConfig(),
		Embedding: *loadEmbeddingConfig(),
		Keywords:  *loadKeywordsConfig(),
		Copy:      *loadCopyConfig(),
		Speech:    *loadSpeechConfig(),
		Session:   *loadSessionConfig(),
		Database:  *loadDatabaseConfig(),
		LogLevel:  strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadQuestionsConfig() *QuestionsConfig {
	return &QuestionsConfig{
		Source:          strings.ToLower(getEnvOrDefault("QUESTIONS_SOURCE", "file")),
		File:            getEnvOrDefault("QUESTIONS_FILE", "data/questions.csv"),
		Sheet:           getEnvOrDefault("QUESTIONS_SHEET", ""),
		Watch:           getEnvBoolOrDefault("QUESTIONS_WATCH", true),
		SpreadsheetID:   getEnvOrDefault("SHEETS_SPREADSHEET_ID", ""),
		Range:           getEnvOrDefault("SHEETS_RANGE", "Sheet1"),
		CredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", ""),
		APIKey:          getEnvOrDefault("GOOGLE_API_KEY", ""),
	}
}

func loadEmbeddingConfig() *EmbeddingConfig {
	return &EmbeddingConfig{
		Provider:       strings.ToLower(getEnvOrDefault("EMBEDDING_PROVIDER", "tfidf")),
		OllamaEndpoint: getEnvOrDefault("OLLAMA_ENDPOINT", "http://localhost:11434"),
		OllamaModel:    getEnvOrDefault("OLLAMA_MODEL", "embeddinggemma"),
		GenAIAPIKey:    getEnvOrDefault("GENAI_API_KEY", ""),
		GenAIModel:     getEnvOrDefault("GENAI_MODEL", "gemini-embedding-001"),
		TaskType:       getEnvOrDefault("GENAI_TASK_TYPE", "SEMANTIC_SIMILARITY"),
		Timeout:        getEnvDurationOrDefault("EMBEDDING_TIMEOUT", 30*time.Second),
	}
}

func loadKeywordsConfig() *KeywordsConfig {
	return &KeywordsConfig{
		File:  getEnvOrDefault("KEYWORDS_FILE", "job_related_terms.txt"),
		Watch: getEnvBoolOrDefault("KEYWORDS_WATCH", true),
	}
}

func loadCopyConfig() *CopyConfig {
	return &CopyConfig{
		Variant:  strings.ToLower(getEnvOrDefault("COPY_VARIANT", "keywords")),
		DeckFile: getEnvOrDefault("COPY_DECK_FILE", ""),
	}
}

func loadSpeechConfig() *SpeechConfig {
	return &SpeechConfig{
		Enabled: getEnvBoolOrDefault("SPEECH_ENABLED", true),
		Rate:    getEnvFloatOrDefault("SPEECH_RATE", 1.0),
	}
}

func loadSessionConfig() *SessionConfig {
	return &SessionConfig{
		TTL:        getEnvDurationOrDefault("SESSION_TTL", 2*time.Hour),
		CookieName: getEnvOrDefault("SESSION_COOKIE", "interviewprep_session"),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:    getEnvOrDefault("DATABASE_URL", ""),
		Driver: getEnvOrDefault("DATABASE_DRIVER", "postgres"),
	}
}

func validateConfig(config *Config) error {
	switch config.Questions.Source {
	case "file":
		if config.Questions.File == "" {
			return errors.ConfigInvalid("QUESTIONS_FILE is required when QUESTIONS_SOURCE=file")
		}
	case "sheets":
		if config.Questions.SpreadsheetID == "" {
			return errors.ConfigInvalid("SHEETS_SPREADSHEET_ID is required when QUESTIONS_SOURCE=sheets")
		}
	default:
		return errors.ConfigInvalid("QUESTIONS_SOURCE must be 'file' or 'sheets'")
	}

	switch config.Embedding.Provider {
	case "tfidf", "ollama":
	case "genai":
		if config.Embedding.GenAIAPIKey == "" {
			return errors.ConfigInvalid("GENAI_API_KEY is required when EMBEDDING_PROVIDER=genai")
		}
	default:
		return errors.ConfigInvalid("EMBEDDING_PROVIDER must be 'tfidf', 'ollama' or 'genai'")
	}

	if config.Speech.Rate <= 0 || config.Speech.Rate > 10 {
		return errors.ConfigInvalid("SPEECH_RATE must be in (0, 10]")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	if config.Database.URL != "" {
		switch config.Database.Driver {
		case "postgres", "sqlite":
		default:
			return errors.ConfigInvalid("DATABASE_DRIVER must be 'postgres' or 'sqlite'")
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
