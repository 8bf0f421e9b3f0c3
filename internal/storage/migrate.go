package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MetaKeyDBVersion stores the highest applied migration number. Startup is
// idempotent: migrations at or below the recorded version are skipped.
const MetaKeyDBVersion = "db_version"

const metadataTableSQL = `
CREATE TABLE IF NOT EXISTS app_metadata (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
INSERT OR IGNORE INTO app_metadata (key, value) VALUES ('db_version', '0');
`

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(metadataTableSQL); err != nil {
		return fmt.Errorf("init metadata table: %w", err)
	}
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	entries, err := migrationEntries(".up.sql")
	if err != nil {
		return err
	}
	for _, name := range entries {
		version, parseErr := migrationVersion(name)
		if parseErr != nil {
			return parseErr
		}
		if version <= current {
			continue
		}
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
		if err := setSchemaVersion(db, version); err != nil {
			return err
		}
	}
	return nil
}

func MigrateDown(db *sql.DB) error {
	entries, err := migrationEntries(".down.sql")
	if err != nil {
		return err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		name := entries[i]
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return setSchemaVersion(db, 0)
}

// SchemaVersion reads the recorded migration number, 0 when none applied.
func SchemaVersion(db *sql.DB) (int, error) {
	row := db.QueryRow(`SELECT value FROM app_metadata WHERE key = ?`, MetaKeyDBVersion)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	version, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse schema version %q: %w", raw, err)
	}
	return version, nil
}

func setSchemaVersion(db *sql.DB, version int) error {
	_, err := db.Exec(`
		INSERT INTO app_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		MetaKeyDBVersion, strconv.Itoa(version),
	)
	if err != nil {
		return fmt.Errorf("record schema version %d: %w", version, err)
	}
	return nil
}

func migrationEntries(suffix string) ([]string, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	return entries, nil
}

func migrationVersion(name string) (int, error) {
	base := path.Base(name)
	idx := strings.IndexByte(base, '_')
	if idx <= 0 {
		return 0, fmt.Errorf("migration %s: missing version prefix", name)
	}
	version, err := strconv.Atoi(base[:idx])
	if err != nil {
		return 0, fmt.Errorf("migration %s: bad version prefix: %w", name, err)
	}
	return version, nil
}
