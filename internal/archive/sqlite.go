// Package archive persists conversation sessions to SQLite so the host
// can restore bibliographies, notes, and reading lists across restarts.
// The engine itself treats session state as in-memory; this layer is a
// host concern.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"scholarbot/internal/paper"
	"scholarbot/internal/session"
)

// DB wraps the SQLite session archive.
type DB struct {
	db *sql.DB
}

// Open opens or creates the archive at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	// SQLite doesn't support concurrent writes.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the archive.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			conversation_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			title TEXT NOT NULL,
			authors_json TEXT,
			year INTEGER,
			venue TEXT,
			url TEXT,
			abstract TEXT,
			citations INTEGER,
			notes_json TEXT,
			PRIMARY KEY (conversation_id, idx)
		);

		CREATE TABLE IF NOT EXISTS reading_lists (
			conversation_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			papers_json TEXT,
			PRIMARY KEY (conversation_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_papers_conversation
			ON papers(conversation_id);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveSession replaces the archived snapshot of a session. The caller
// holds the session lock.
func (d *DB) SaveSession(s *session.Session) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM papers WHERE conversation_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clearing papers: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM reading_lists WHERE conversation_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clearing reading lists: %w", err)
	}

	for _, p := range s.Registry.List() {
		authorsJSON, err := json.Marshal(p.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors: %w", err)
		}
		notesJSON, err := json.Marshal(p.Notes)
		if err != nil {
			return fmt.Errorf("encoding notes: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO papers (conversation_id, idx, title, authors_json,
				year, venue, url, abstract, citations, notes_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, p.Index, p.Title, string(authorsJSON),
			p.Year, p.Venue, p.URL, p.Abstract, p.Citations, string(notesJSON))
		if err != nil {
			return fmt.Errorf("inserting paper %d: %w", p.Index, err)
		}
	}

	for pos, l := range s.Lists() {
		papersJSON, err := json.Marshal(l.Papers)
		if err != nil {
			return fmt.Errorf("encoding list papers: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO reading_lists (conversation_id, position, name, papers_json)
			VALUES (?, ?, ?, ?)`,
			s.ID, pos, l.Name, string(papersJSON))
		if err != nil {
			return fmt.Errorf("inserting reading list %q: %w", l.Name, err)
		}
	}

	return tx.Commit()
}

// LoadSession restores the archived session for a conversation id.
// A conversation with no archived rows yields a fresh, empty session.
func (d *DB) LoadSession(conversationID string) (*session.Session, error) {
	s := session.New(conversationID)

	rows, err := d.db.Query(`
		SELECT idx, title, authors_json, year, venue, url, abstract, citations, notes_json
		FROM papers WHERE conversation_id = ? ORDER BY idx`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []*paper.Paper
	for rows.Next() {
		var p paper.Paper
		var authorsJSON, notesJSON string
		if err := rows.Scan(&p.Index, &p.Title, &authorsJSON,
			&p.Year, &p.Venue, &p.URL, &p.Abstract, &p.Citations, &notesJSON); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		if authorsJSON != "" {
			if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
				return nil, fmt.Errorf("decoding authors: %w", err)
			}
		}
		if notesJSON != "" {
			if err := json.Unmarshal([]byte(notesJSON), &p.Notes); err != nil {
				return nil, fmt.Errorf("decoding notes: %w", err)
			}
		}
		papers = append(papers, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading papers: %w", err)
	}
	s.Registry.Restore(papers)

	listRows, err := d.db.Query(`
		SELECT name, papers_json FROM reading_lists
		WHERE conversation_id = ? ORDER BY position`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying reading lists: %w", err)
	}
	defer listRows.Close()

	for listRows.Next() {
		var name, papersJSON string
		if err := listRows.Scan(&name, &papersJSON); err != nil {
			return nil, fmt.Errorf("scanning reading list: %w", err)
		}
		var indices []int
		if papersJSON != "" {
			if err := json.Unmarshal([]byte(papersJSON), &indices); err != nil {
				return nil, fmt.Errorf("decoding list papers: %w", err)
			}
		}
		s.RestoreList(name, indices)
	}
	if err := listRows.Err(); err != nil {
		return nil, fmt.Errorf("reading reading lists: %w", err)
	}

	return s, nil
}

// Conversations returns the ids of all archived conversations.
func (d *DB) Conversations() ([]string, error) {
	rows, err := d.db.Query(`
		SELECT conversation_id FROM papers
		UNION SELECT conversation_id FROM reading_lists
		ORDER BY conversation_id`)
	if err != nil {
		return nil, fmt.Errorf("querying conversations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
