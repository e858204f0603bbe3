package fs

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/okabe-dev/peruse/internal/apperr"
)

// Snapshot is one directory listing: the children sorted by name,
// optionally prefixed with a synthetic ".." parent shortcut, plus the
// time the listing was taken. Snapshots are owned exclusively by the
// engine's cache and replaced wholesale on refresh.
type Snapshot struct {
	Entries  []Entry
	LoadedAt time.Time
}

// ReadSnapshot lists dir and builds a sorted Snapshot. Children that
// cannot be resolved individually (e.g. a broken symlink racing a
// delete) are skipped so one bad entry does not abort the listing; a
// whole-directory failure returns a single Parse error with no partial
// result. The ".." shortcut is omitted at the filesystem root.
func ReadSnapshot(dir string, addParentShortcut bool) (*Snapshot, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperr.New(apperr.KindParse, "readdir", dir, err)
	}

	entries := make([]Entry, 0, len(dirents)+1)
	if addParentShortcut && filepath.Dir(dir) != dir {
		entries = append(entries, Entry{
			Parent: dir,
			Name:   ParentShortcut,
			IsFile: false,
		})
	}

	for _, de := range dirents {
		full := filepath.Join(dir, de.Name())
		entries = append(entries, Entry{
			Parent: dir,
			Name:   norm.NFC.String(de.Name()),
			IsFile: entryIsFile(de, full),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return &Snapshot{Entries: entries, LoadedAt: time.Now()}, nil
}

// entryIsFile resolves the file/dir flag, following symlinks so a link
// to a directory browses like a directory.
func entryIsFile(de os.DirEntry, full string) bool {
	if de.Type()&os.ModeSymlink != 0 {
		return isFile(full)
	}
	return !de.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
