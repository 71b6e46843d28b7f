package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/yusi/shuqian/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStorage implements Repository using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

var _ Repository = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens (creating if needed) the database at path and
// brings its schema up to date. ":memory:" opens a private in-memory
// database.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" a single database and serializes
	// writers
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if version < 1 {
		return s.createSchema()
	}
	return nil
}

// createSchema creates the schema. seq preserves insertion order.
func (s *SQLiteStorage) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			favorite INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_favorite ON bookmarks(favorite) WHERE favorite = 1;

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

const selectColumns = `SELECT id, title, url, description, category, favorite FROM bookmarks`

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row scanner) (model.Bookmark, error) {
	var b model.Bookmark
	var category string
	var favorite int
	if err := row.Scan(&b.ID, &b.Title, &b.URL, &b.Description, &category, &favorite); err != nil {
		return model.Bookmark{}, err
	}
	b.Category = model.Category(category)
	b.Favorite = favorite == 1
	return b, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// List returns every bookmark in insertion order.
func (s *SQLiteStorage) List(ctx context.Context) ([]model.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmarks := []model.Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// Get returns one bookmark or ErrNotFound.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (model.Bookmark, error) {
	b, err := scanBookmark(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bookmark{}, ErrNotFound
	}
	return b, err
}

// Create inserts b, or returns ErrConflict if its ID is taken.
func (s *SQLiteStorage) Create(ctx context.Context, b model.Bookmark) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM bookmarks WHERE id = ?`, b.ID).Scan(&exists)
	switch {
	case err == nil:
		return ErrConflict
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO bookmarks (id, title, url, description, category, favorite)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.Title, b.URL, b.Description, string(b.Category), boolToInt(b.Favorite)); err != nil {
		return err
	}

	return tx.Commit()
}

// Update merges the set fields of patch into the stored bookmark and
// returns the result.
func (s *SQLiteStorage) Update(ctx context.Context, id string, patch model.Patch) (model.Bookmark, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Bookmark{}, err
	}
	defer tx.Rollback()

	b, err := scanBookmark(tx.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bookmark{}, ErrNotFound
	}
	if err != nil {
		return model.Bookmark{}, err
	}

	patch.ApplyTo(&b)

	if _, err := tx.ExecContext(ctx, `
		UPDATE bookmarks
		SET title = ?, url = ?, description = ?, category = ?, favorite = ?
		WHERE id = ?
	`, b.Title, b.URL, b.Description, string(b.Category), boolToInt(b.Favorite), id); err != nil {
		return model.Bookmark{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Bookmark{}, err
	}
	return b, nil
}

// Delete removes a bookmark or returns ErrNotFound.
func (s *SQLiteStorage) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
