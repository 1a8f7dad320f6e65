package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"greentime/internal/core"
	"greentime/internal/log"

	_ "modernc.org/sqlite"
)

// SystemCategoryName is the protected built-in category representing
// unproductive time. It must exist and be flagged once any data is seeded.
const SystemCategoryName = "Time Waste"

var defaultCategories = []core.Category{
	{Name: "Coding", Description: "Programming and software development", Color: "#10B981"},
	{Name: "Study", Description: "Learning and educational activities", Color: "#3B82F6"},
	{Name: "Work", Description: "Professional work activities", Color: "#F59E0B"},
	{Name: "Exercise", Description: "Physical fitness and health", Color: "#EF4444"},
	{Name: SystemCategoryName, Description: "Unproductive activities", Color: "#EF4444", IsSystem: true},
}

// Store is the SQLite-backed record store. A single connection is held
// for the process lifetime; SQLite serializes access on its own.
type Store struct {
	db  *sql.DB
	log *log.Logger
}

// Open opens (or creates) the database at dbPath, applies pending
// migrations and reconciles the seeded categories. Migration and seed
// failures are logged but not fatal: the store keeps working against
// whatever schema exists.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, log: logger.WithComponent("storage")}

	if err := s.Migrate(); err != nil {
		s.log.Warn("schema migration failed, continuing with existing schema", "error", err)
	}
	if err := s.seedCategories(context.Background()); err != nil {
		s.log.Warn("category seeding failed", "error", err)
	}

	return s, nil
}

// OpenMemory creates an in-memory store for testing.
func OpenMemory(logger *log.Logger) (*Store, error) {
	return Open(":memory:", logger)
}

// Bootstrap opens the store at dbPath. When initialization fails outright
// the error is logged and a Degraded backend is returned in its place, so
// the presentation shell stays usable with empty data.
func Bootstrap(dbPath string, logger *log.Logger) Backend {
	s, err := Open(dbPath, logger)
	if err != nil {
		logger.Error("store initialization failed, continuing degraded", "error", err, "path", dbPath)
		return &Degraded{Reason: err.Error()}
	}
	return s
}

func (s *Store) Close() error {
	return s.db.Close()
}

// seedCategories inserts the default set when the table is empty. The
// system-category reconciliation runs on every start: if the protected
// category is missing it is created, if it exists unflagged it is
// corrected in place.
func (s *Store) seedCategories(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}

	if n == 0 {
		for _, c := range defaultCategories {
			_, err := s.db.ExecContext(ctx,
				`INSERT INTO categories (name, description, color, is_system_category) VALUES (?, ?, ?, ?)`,
				c.Name, c.Description, c.Color, boolToInt(c.IsSystem),
			)
			if err != nil {
				return fmt.Errorf("seed category %q: %w", c.Name, err)
			}
		}
		s.log.Info("seeded default categories", "count", len(defaultCategories))
		return nil
	}

	var isSystem int
	err := s.db.QueryRowContext(ctx,
		`SELECT is_system_category FROM categories WHERE name = ?`, SystemCategoryName,
	).Scan(&isSystem)
	switch {
	case err == sql.ErrNoRows:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO categories (name, description, color, is_system_category) VALUES (?, ?, ?, 1)`,
			SystemCategoryName, "Unproductive activities", "#EF4444",
		)
		if err != nil {
			return fmt.Errorf("create system category: %w", err)
		}
		s.log.Info("created missing system category", "name", SystemCategoryName)
	case err != nil:
		return fmt.Errorf("check system category: %w", err)
	case isSystem == 0:
		_, err = s.db.ExecContext(ctx,
			`UPDATE categories SET is_system_category = 1, color = ? WHERE name = ?`,
			"#EF4444", SystemCategoryName,
		)
		if err != nil {
			return fmt.Errorf("flag system category: %w", err)
		}
		s.log.Info("corrected system category flag", "name", SystemCategoryName)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseStamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// nullStamp converts a nullable timestamp column.
func nullStamp(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := parseStamp(ns.String)
	return &t
}

// nullString converts a nullable text column to the empty-string
// representation used by core types for optional dates.
func nullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// orNil converts an optional date string to its nullable column value.
func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
