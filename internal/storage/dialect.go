package storage

import (
	"strconv"
	"strings"
)

// dialect holds the statements that differ between SQL engines. Queries are
// written with '?' placeholders and rebound for engines that number them.
type dialect struct {
	name       string
	numbered   bool
	migrations []string
	insertNote string
	upsertPage string
}

var sqliteDialect = dialect{
	name: "sqlite",
	migrations: []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			name TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			note_id TEXT NOT NULL,
			page_index INTEGER NOT NULL,
			drawing BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (note_id, page_index)
		)`,
	},
	insertNote: `INSERT INTO notes (id) VALUES (?) ON CONFLICT(id) DO NOTHING`,
	upsertPage: `INSERT INTO pages (note_id, page_index, drawing) VALUES (?, ?, ?)
		ON CONFLICT(note_id, page_index) DO UPDATE SET drawing = excluded.drawing, updated_at = CURRENT_TIMESTAMP`,
}

var postgresDialect = dialect{
	name:     "postgres",
	numbered: true,
	migrations: []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			name TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			note_id TEXT NOT NULL,
			page_index INTEGER NOT NULL,
			drawing BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (note_id, page_index)
		)`,
	},
	insertNote: `INSERT INTO notes (id) VALUES (?) ON CONFLICT (id) DO NOTHING`,
	upsertPage: `INSERT INTO pages (note_id, page_index, drawing) VALUES (?, ?, ?)
		ON CONFLICT (note_id, page_index) DO UPDATE SET drawing = EXCLUDED.drawing, updated_at = now()`,
}

var mysqlDialect = dialect{
	name: "mysql",
	migrations: []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id VARCHAR(64) NOT NULL PRIMARY KEY,
			name TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS pages (
			note_id VARCHAR(64) NOT NULL,
			page_index INT NOT NULL,
			drawing LONGBLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (note_id, page_index)
		)`,
	},
	insertNote: `INSERT IGNORE INTO notes (id) VALUES (?)`,
	upsertPage: `INSERT INTO pages (note_id, page_index, drawing) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE drawing = VALUES(drawing), updated_at = CURRENT_TIMESTAMP`,
}

// rebind rewrites '?' placeholders to $1..$n for numbered dialects.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
