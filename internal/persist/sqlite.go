package persist

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pfassina/labtracker/internal/cell"
)

const schema = `
CREATE TABLE IF NOT EXISTS state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    next_color_index INTEGER NOT NULL DEFAULT 0,
    next_group_number INTEGER NOT NULL DEFAULT 1,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cells (
    key TEXT PRIMARY KEY,
    unit TEXT NOT NULL,
    text TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL DEFAULT 'empty',
    linked INTEGER NOT NULL DEFAULT 0,
    group_name TEXT NOT NULL DEFAULT '',
    group_color TEXT NOT NULL DEFAULT '',
    out_fridge INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_cells_group ON cells(group_name);

CREATE VIRTUAL TABLE IF NOT EXISTS cells_fts USING fts5(
    key UNINDEXED, text, group_name,
    tokenize='unicode61 remove_diacritics 2'
);
`

// SQLiteStore keeps the state in a SQLite database with a full-text index
// over cell labels.
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// OpenSQLite opens or creates the database at the given path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return initSQLite(conn, path)
}

// OpenSQLiteMemory opens an in-memory database (for testing).
func OpenSQLiteMemory() (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every pooled connection would get its own empty :memory: database.
	conn.SetMaxOpenConns(1)
	return initSQLite(conn, ":memory:")
}

func initSQLite(conn *sql.DB, path string) (*SQLiteStore, error) {
	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{conn: conn, path: path}, nil
}

func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Load rebuilds the blob from the cells table.
func (s *SQLiteStore) Load() (*Blob, error) {
	b := NewBlob()
	err := s.conn.QueryRow("SELECT next_color_index, next_group_number FROM state WHERE id = 1").
		Scan(&b.NextColorIndex, &b.NextGroupNumber)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cursors: %w", err)
	}

	rows, err := s.conn.Query(`
		SELECT key, unit, text, state, linked, group_name, group_color, out_fridge
		FROM cells
	`)
	if err != nil {
		return nil, fmt.Errorf("read cells: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, unit string
		var r cell.Record
		var state string
		if err := rows.Scan(&key, &unit, &r.Text, &state, &r.Linked, &r.GroupName, &r.GroupColor, &r.OutFridge); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		r.State = cell.State(state)
		u, err := cell.ParseUnit(unit)
		if err != nil {
			continue
		}
		b.Table(u)[key] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cells: %w", err)
	}
	return &b, nil
}

// Save replaces the stored state in one transaction.
func (s *SQLiteStore) Save(b Blob) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO state (id, next_color_index, next_group_number, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			next_color_index = excluded.next_color_index,
			next_group_number = excluded.next_group_number,
			updated_at = excluded.updated_at
	`, b.NextColorIndex, b.NextGroupNumber, time.Now().Unix()); err != nil {
		return fmt.Errorf("write cursors: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM cells"); err != nil {
		return fmt.Errorf("clear cells: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM cells_fts"); err != nil {
		return fmt.Errorf("clear cells_fts: %w", err)
	}

	ins, err := tx.Prepare(`
		INSERT INTO cells (key, unit, text, state, linked, group_name, group_color, out_fridge)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer func() { _ = ins.Close() }()
	fts, err := tx.Prepare("INSERT INTO cells_fts (key, text, group_name) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = fts.Close() }()

	for _, u := range cell.Units {
		for key, r := range b.Table(u) {
			if _, err := ins.Exec(key, u.String(), r.Text, string(r.State), r.Linked, r.GroupName, r.GroupColor, r.OutFridge); err != nil {
				return fmt.Errorf("write cell %s: %w", key, err)
			}
			if strings.TrimSpace(r.Text) == "" && r.GroupName == "" {
				continue
			}
			if _, err := fts.Exec(key, r.Text, r.GroupName); err != nil {
				return fmt.Errorf("index cell %s: %w", key, err)
			}
		}
	}
	return tx.Commit()
}

// Clear removes every stored cell and the cursors.
func (s *SQLiteStore) Clear() error {
	for _, stmt := range []string{"DELETE FROM cells", "DELETE FROM cells_fts", "DELETE FROM state"} {
		if _, err := s.conn.Exec(stmt); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
	}
	return nil
}

// Search finds cells whose label or group name match every word of query
// as a prefix.
func (s *SQLiteStore) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 50
	}
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}

	rows, err := s.conn.Query(`
		SELECT key, text, group_name
		FROM cells_fts
		WHERE cells_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, err
	}

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Key, &h.Text, &h.GroupName); err != nil {
			_ = rows.Close()
			return nil, err
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return hits, nil
}

// ftsQuery quotes each word so user input is never parsed as FTS syntax.
func ftsQuery(q string) string {
	var terms []string
	for _, w := range strings.Fields(q) {
		w = strings.ReplaceAll(w, `"`, "")
		if w == "" {
			continue
		}
		terms = append(terms, `"`+w+`"*`)
	}
	return strings.Join(terms, " ")
}
