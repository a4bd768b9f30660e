package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mixfield/seograph/internal/models"
)

// DocumentRow represents a row in the documents table. Data carries the
// original JSON document so snapshots can be decoded without touching
// disk.
type DocumentRow struct {
	Path      string
	Kind      models.Kind
	ID        string
	Slug      string
	Title     string
	Checksum  string
	Data      []byte
	UpdatedAt time.Time
}

// UpsertDocument inserts or replaces a document row.
func (db *DB) UpsertDocument(row DocumentRow) error {
	_, err := db.conn.Exec(`
		INSERT INTO documents (path, kind, id, slug, title, checksum, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			kind       = excluded.kind,
			id         = excluded.id,
			slug       = excluded.slug,
			title      = excluded.title,
			checksum   = excluded.checksum,
			data       = excluded.data,
			updated_at = excluded.updated_at
	`, row.Path, string(row.Kind), row.ID, row.Slug, row.Title, row.Checksum, string(row.Data), row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("catalog: upsert document: %w", err)
	}
	return nil
}

// DeleteDocument removes a document row by path.
func (db *DB) DeleteDocument(path string) error {
	if _, err := db.conn.Exec(`DELETE FROM documents WHERE path = ?`, path); err != nil {
		return fmt.Errorf("catalog: delete document: %w", err)
	}
	return nil
}

// GetChecksum returns the stored checksum for a document, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM documents WHERE path = ?`, path).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil // not found is fine
	}
	if err != nil {
		return "", fmt.Errorf("catalog: get checksum: %w", err)
	}
	return cs, nil
}

// AllChecksums returns path → checksum for every cataloged document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("catalog: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Snapshot decodes every cataloged document into the typed collections
// the rule engines consume. Rows that fail to decode are skipped.
func (db *DB) Snapshot() (*models.Snapshot, error) {
	rows, err := db.conn.Query(`SELECT kind, data FROM documents ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("catalog: snapshot query: %w", err)
	}
	defer rows.Close()

	snap := &models.Snapshot{}
	for rows.Next() {
		var kind, data string
		if err := rows.Scan(&kind, &data); err != nil {
			return nil, err
		}
		appendDocument(snap, models.Kind(kind), []byte(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: snapshot rows: %w", err)
	}
	return snap, nil
}

func appendDocument(snap *models.Snapshot, kind models.Kind, data []byte) {
	switch kind {
	case models.KindPost:
		var v models.Post
		if json.Unmarshal(data, &v) == nil {
			snap.Posts = append(snap.Posts, v)
		}
	case models.KindHub:
		var v models.Hub
		if json.Unmarshal(data, &v) == nil {
			snap.Hubs = append(snap.Hubs, v)
		}
	case models.KindPillar:
		var v models.PillarPage
		if json.Unmarshal(data, &v) == nil {
			snap.Pillars = append(snap.Pillars, v)
		}
	case models.KindProgrammatic:
		var v models.ProgrammaticPage
		if json.Unmarshal(data, &v) == nil {
			snap.Programmatic = append(snap.Programmatic, v)
		}
	case models.KindResource:
		var v models.ResourcePage
		if json.Unmarshal(data, &v) == nil {
			snap.Resources = append(snap.Resources, v)
		}
	case models.KindAuthor:
		var v models.Author
		if json.Unmarshal(data, &v) == nil {
			snap.Authors = append(snap.Authors, v)
		}
	case models.KindCategory:
		var v models.Category
		if json.Unmarshal(data, &v) == nil {
			snap.Categories = append(snap.Categories, v)
		}
	case models.KindTag:
		var v models.Tag
		if json.Unmarshal(data, &v) == nil {
			snap.Tags = append(snap.Tags, v)
		}
	}
}
