package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"sketchnotes/internal/domain"
)

// SQLStore implements domain.NoteStore on a notes/pages table pair.
type SQLStore struct {
	conn    *sql.DB
	dialect dialect
}

func newSQLStore(conn *sql.DB, d dialect) (*SQLStore, error) {
	s := &SQLStore{conn: conn, dialect: d}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLStore) migrate() error {
	for _, m := range s.dialect.migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %s: %w", firstLine(m), err)
		}
	}
	return nil
}

func (s *SQLStore) q(query string) string {
	return s.dialect.rebind(query)
}

func (s *SQLStore) ListNoteIDs() ([]string, error) {
	rows, err := s.conn.Query(`SELECT id FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
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

func (s *SQLStore) ReadName(noteID string) (string, error) {
	var name sql.NullString
	err := s.conn.QueryRow(s.q(`SELECT name FROM notes WHERE id = ?`), noteID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !name.Valid) {
		return "", fmt.Errorf("name of %s: %w", noteID, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read name: %w", err)
	}
	return name.String, nil
}

// noteExists runs inside tx so the existence check and the write that
// depends on it see the same snapshot.
func (s *SQLStore) noteExists(tx *sql.Tx, noteID string) error {
	var one int
	err := tx.QueryRow(s.q(`SELECT 1 FROM notes WHERE id = ?`), noteID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}
	return err
}

func (s *SQLStore) WriteName(noteID, name string) error {
	return s.inTx(func(tx *sql.Tx) error {
		if err := s.noteExists(tx, noteID); err != nil {
			return err
		}
		if _, err := tx.Exec(s.q(`UPDATE notes SET name = ? WHERE id = ?`), name, noteID); err != nil {
			return fmt.Errorf("write name: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) CreateNamespace(noteID string) error {
	if !domain.ValidNoteID(noteID) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, noteID)
	}
	if _, err := s.conn.Exec(s.q(s.dialect.insertNote), noteID); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (s *SQLStore) DeleteNamespace(noteID string) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(s.q(`DELETE FROM pages WHERE note_id = ?`), noteID); err != nil {
			return fmt.Errorf("delete pages: %w", err)
		}
		if _, err := tx.Exec(s.q(`DELETE FROM notes WHERE id = ?`), noteID); err != nil {
			return fmt.Errorf("delete note: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) ReadPage(noteID string, pageIndex int) ([]byte, error) {
	var drawing []byte
	err := s.conn.QueryRow(
		s.q(`SELECT drawing FROM pages WHERE note_id = ? AND page_index = ?`), noteID, pageIndex,
	).Scan(&drawing)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("page %d of %s: %w", pageIndex, noteID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return drawing, nil
}

func (s *SQLStore) WritePage(noteID string, pageIndex int, drawing []byte) error {
	if pageIndex < 0 {
		return fmt.Errorf("write page: negative index %d", pageIndex)
	}
	if drawing == nil {
		drawing = []byte{}
	}
	return s.inTx(func(tx *sql.Tx) error {
		if err := s.noteExists(tx, noteID); err != nil {
			return err
		}
		if _, err := tx.Exec(s.q(s.dialect.upsertPage), noteID, pageIndex, drawing); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) CountPages(noteID string) (int, error) {
	var n int
	err := s.conn.QueryRow(s.q(`SELECT COUNT(*) FROM pages WHERE note_id = ?`), noteID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}

func (s *SQLStore) Close() error {
	return s.conn.Close()
}

func (s *SQLStore) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func firstLine(stmt string) string {
	for i := 0; i < len(stmt); i++ {
		if stmt[i] == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
