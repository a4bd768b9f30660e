package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mixfield/seograph/internal/storage"
)

// syncTestEnv sets up a content dir, storage, and DB for sync tests.
func syncTestEnv(t *testing.T) (string, storage.Provider, *DB) {
	t.Helper()
	contentDir := t.TempDir()
	store, err := storage.NewFS(contentDir)
	if err != nil {
		t.Fatal(err)
	}
	return contentDir, store, testDB(t)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeDoc(t *testing.T, contentDir, rel, body string) {
	t.Helper()
	p := filepath.Join(contentDir, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSync_CatalogsNewDocuments(t *testing.T) {
	contentDir, store, db := syncTestEnv(t)
	writeDoc(t, contentDir, "posts/hello.json", `{"id":"p1","slug":"hello","title":"Hello","status":"published"}`)
	writeDoc(t, contentDir, "hubs/mixing.json", `{"id":"h1","slug":"mixing","name":"Mixing"}`)

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	snap, err := db.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Posts) != 1 || snap.Posts[0].ID != "p1" {
		t.Errorf("posts = %+v", snap.Posts)
	}
	if len(snap.Hubs) != 1 || snap.Hubs[0].Name != "Mixing" {
		t.Errorf("hubs = %+v", snap.Hubs)
	}
}

func TestSync_SkipsFilesOutsideKindDirs(t *testing.T) {
	contentDir, store, db := syncTestEnv(t)
	writeDoc(t, contentDir, "stray.json", `{"id":"x"}`)
	writeDoc(t, contentDir, "unknown/doc.json", `{"id":"y"}`)

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	all, _ := db.AllChecksums()
	if len(all) != 0 {
		t.Errorf("unexpected catalog entries: %v", all)
	}
}

func TestSync_AssignsMissingID(t *testing.T) {
	contentDir, store, db := syncTestEnv(t)
	writeDoc(t, contentDir, "posts/anon.json", `{"slug":"anon","title":"Anon"}`)

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	snap, _ := db.Snapshot()
	if len(snap.Posts) != 1 {
		t.Fatalf("posts = %+v", snap.Posts)
	}
	if snap.Posts[0].ID == "" {
		t.Error("document without an id should be assigned one")
	}
}

func TestSync_RemovesStaleEntries(t *testing.T) {
	contentDir, store, db := syncTestEnv(t)
	writeDoc(t, contentDir, "posts/gone.json", `{"id":"p1","slug":"gone"}`)

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatal(err)
	}
	if cs, _ := db.GetChecksum("posts/gone.json"); cs == "" {
		t.Fatal("precondition: document should be cataloged")
	}

	if err := os.Remove(filepath.Join(contentDir, "posts/gone.json")); err != nil {
		t.Fatal(err)
	}
	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatal(err)
	}
	if cs, _ := db.GetChecksum("posts/gone.json"); cs != "" {
		t.Error("stale entry not removed")
	}
}

func TestSync_UnchangedDocumentsKeepChecksum(t *testing.T) {
	contentDir, store, db := syncTestEnv(t)
	writeDoc(t, contentDir, "posts/same.json", `{"id":"p1","slug":"same"}`)

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatal(err)
	}
	first, _ := db.GetChecksum("posts/same.json")

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatal(err)
	}
	second, _ := db.GetChecksum("posts/same.json")
	if first == "" || first != second {
		t.Errorf("checksum changed across no-op sync: %q vs %q", first, second)
	}
}
