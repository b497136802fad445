package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/bmdash/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas are per connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
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

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS profiles (
			name TEXT PRIMARY KEY NOT NULL,
			position INTEGER NOT NULL,
			search_engine TEXT NOT NULL,
			intranet_check_url TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			version TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY NOT NULL,
			profile_name TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			search_title TEXT,
			url TEXT NOT NULL,
			intranet_url TEXT,
			search_url TEXT,
			icon TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			FOREIGN KEY (profile_name) REFERENCES profiles(name) ON DELETE CASCADE ON UPDATE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_profile ON bookmarks(profile_name, position);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the settings table that remembers the current profile.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT NOT NULL
		);
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Load reads the store from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	store := &model.Store{Profiles: []model.Profile{}}

	rows, err := s.db.Query(`
		SELECT name, search_engine, intranet_check_url, tags, version
		FROM profiles
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Profile
		var intranetCheck sql.NullString
		var tagsJSON string

		if err := rows.Scan(&p.Name, &p.SearchEngine, &intranetCheck, &tagsJSON, &p.Version); err != nil {
			return nil, err
		}
		p.IntranetCheckURL = intranetCheck.String
		p.Tags = decodeTags(tagsJSON)
		p.Bookmarks = []model.Bookmark{}

		store.Profiles = append(store.Profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byName := make(map[string]*model.Profile, len(store.Profiles))
	for i := range store.Profiles {
		byName[store.Profiles[i].Name] = &store.Profiles[i]
	}

	rows, err = s.db.Query(`
		SELECT id, profile_name, title, search_title, url, intranet_url, search_url, icon, tags
		FROM bookmarks
		ORDER BY profile_name, position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bookmark
		var profileName, tagsJSON string
		var searchTitle, intranetURL, searchURL, icon sql.NullString

		if err := rows.Scan(
			&b.ID, &profileName, &b.Title, &searchTitle, &b.URL,
			&intranetURL, &searchURL, &icon, &tagsJSON,
		); err != nil {
			return nil, err
		}

		b.SearchTitle = searchTitle.String
		b.IntranetURL = intranetURL.String
		b.SearchURL = searchURL.String
		b.Icon = icon.String
		b.Tags = decodeTags(tagsJSON)

		if p, ok := byName[profileName]; ok {
			p.Bookmarks = append(p.Bookmarks, b)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var current sql.NullString
	err = s.db.QueryRow("SELECT value FROM settings WHERE key = 'current_profile'").Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	store.Current = current.String

	store.Normalize()
	return store, nil
}

// Save writes the store to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(store *model.Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Clear existing data
	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM profiles"); err != nil {
		return err
	}

	profileStmt, err := tx.Prepare(`
		INSERT INTO profiles (name, position, search_engine, intranet_check_url, tags, version)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer profileStmt.Close()

	bookmarkStmt, err := tx.Prepare(`
		INSERT INTO bookmarks (id, profile_name, position, title, search_title, url, intranet_url, search_url, icon, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer bookmarkStmt.Close()

	for i, p := range store.Profiles {
		if _, err := profileStmt.Exec(
			p.Name, i, p.SearchEngine, nullString(p.IntranetCheckURL), encodeTags(p.Tags), p.Version,
		); err != nil {
			return fmt.Errorf("save profile %q: %w", p.Name, err)
		}

		for j, b := range p.Bookmarks {
			if _, err := bookmarkStmt.Exec(
				b.ID, p.Name, j, b.Title, nullString(b.SearchTitle), b.URL,
				nullString(b.IntranetURL), nullString(b.SearchURL), nullString(b.Icon), encodeTags(b.Tags),
			); err != nil {
				return fmt.Errorf("save bookmark %q: %w", b.ID, err)
			}
		}
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES ('current_profile', ?)", store.Current,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func encodeTags(tags []string) string {
	if tags == nil {
		return "[]"
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeTags(s string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// nullString stores empty optional fields as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
