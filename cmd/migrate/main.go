package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"interviewprep/adapters/postgres"
	"interviewprep/internal/migration"
	"interviewprep/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: migrate <postgres|sqlite> <database_url> [attempt_export_dir]")
	}

	driver := os.Args[1]
	databaseURL := os.Args[2]

	log.Printf("Applying schema to %s database", driver)

	db, err := sqlx.Connect(driver, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema version %s applied", runner.Version())

	if len(os.Args) < 4 {
		return
	}
	exportDir := os.Args[3]

	files, err := findExportFiles(exportDir)
	if err != nil {
		log.Fatalf("Failed to find export files: %v", err)
	}
	log.Printf("Found %d attempt export files to import", len(files))

	repo := postgres.NewAttemptRepository(db)
	imported := 0
	skipped := 0

	for _, file := range files {
		attempts, err := loadAttemptsFromFile(file)
		if err != nil {
			log.Printf("Failed to load attempts from %s: %v", file, err)
			skipped++
			continue
		}

		for _, attempt := range attempts {
			if attempt.ID == uuid.Nil {
				attempt.ID = uuid.New()
			}
			// Exports without a session land in one deterministic session per file
			if attempt.SessionID == uuid.Nil {
				attempt.SessionID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(file))
			}
			if attempt.CreatedAt.IsZero() {
				attempt.CreatedAt = time.Now().UTC()
			}

			if err := repo.Record(ctx, attempt); err != nil {
				log.Printf("Failed to import attempt %s: %v", attempt.ID, err)
				skipped++
				continue
			}
			imported++
		}
		log.Printf("Imported %s", filepath.Base(file))
	}

	log.Printf("Import complete: %d imported, %d skipped", imported, skipped)
}

func findExportFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// loadAttemptsFromFile accepts either a list of attempts or a progress
// summary with a "recent" list
func loadAttemptsFromFile(filePath string) ([]*models.Attempt, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var attempts []*models.Attempt
	if err := json.Unmarshal(data, &attempts); err == nil {
		return attempts, nil
	}

	var summary struct {
		Recent []*models.Attempt `json:"recent"`
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return summary.Recent, nil
}
