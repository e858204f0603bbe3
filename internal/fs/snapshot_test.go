package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/okabe-dev/peruse/internal/apperr"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestReadSnapshotSortedWithShortcut(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"README.md", "main.rs", ".gitkeep"} {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for _, d := range []string{"src", "empty"} {
		if err := os.Mkdir(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	snap, err := ReadSnapshot(dir, true)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"..", ".gitkeep", "README.md", "empty", "main.rs", "src"}
	got := names(snap.Entries)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if snap.LoadedAt.IsZero() {
		t.Errorf("LoadedAt not set")
	}
}

func TestReadSnapshotNoShortcut(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := ReadSnapshot(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range snap.Entries {
		if e.Name == ParentShortcut {
			t.Errorf("unexpected parent shortcut in %v", names(snap.Entries))
		}
	}
}

func TestReadSnapshotFlags(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "d"), 0o755); err != nil {
		t.Fatal(err)
	}

	snap, err := ReadSnapshot(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range snap.Entries {
		switch e.Name {
		case "f":
			if !e.IsFile {
				t.Errorf("file flagged as directory")
			}
		case "d", ParentShortcut:
			if e.IsFile {
				t.Errorf("%s flagged as file", e.Name)
			}
		}
	}
}

func TestReadSnapshotMissingDir(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope"), true)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperr.IsKind(err, apperr.KindParse) {
		t.Errorf("expected Parse kind, got %v", err)
	}
}
