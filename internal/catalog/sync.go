package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mixfield/seograph/internal/models"
	"github.com/mixfield/seograph/internal/storage"
)

// Sync walks the content directory and brings the catalog up to date:
//   - new/changed documents are decoded and upserted
//   - documents removed from disk are deleted from the catalog
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		if m.Kind == "" {
			continue // file outside a recognized kind directory
		}
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := catalogDocument(db, m.Path, m.Kind, data); err != nil {
			logger.Warn("sync: catalog failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: cataloged", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteDocument(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// docHeader is the common identity envelope every document kind shares.
type docHeader struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Name  string `json:"name"`
}

// catalogDocument decodes the identity fields and upserts the document.
// Documents without an id are assigned one so graph references stay
// stable across restarts within one catalog.
func catalogDocument(db *DB, path string, kind models.Kind, data []byte) error {
	var hdr docHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", path, err)
	}

	if hdr.ID == "" {
		hdr.ID = uuid.NewString()
		patched, err := setDocumentID(data, hdr.ID)
		if err != nil {
			return err
		}
		data = patched
	}

	title := hdr.Title
	if title == "" {
		title = hdr.Name
	}

	return db.UpsertDocument(DocumentRow{
		Path:      path,
		Kind:      kind,
		ID:        hdr.ID,
		Slug:      hdr.Slug,
		Title:     title,
		Checksum:  checksum(data),
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	})
}

// setDocumentID rewrites the document with the generated id injected.
func setDocumentID(data []byte, id string) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode for id patch: %w", err)
	}
	doc["id"] = id
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode with id: %w", err)
	}
	return out, nil
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
