package fs

import (
	"path/filepath"
	"strings"

	"github.com/okabe-dev/peruse/internal/apperr"
)

// ParentShortcut is the synthetic entry name that navigates one level up.
const ParentShortcut = ".."

// Entry represents a single file or directory on disk. The parent
// directory is resolved at construction time; the entry itself is
// immutable afterwards and may go stale if the path is removed
// externally.
type Entry struct {
	Parent string // absolute directory containing the entry
	Name   string
	IsFile bool
}

// NewEntry builds an Entry from a path. It fails with a Path error when
// the path has no base name or no parent directory (filesystem root).
func NewEntry(path string) (Entry, error) {
	cleaned := filepath.Clean(path)
	name := filepath.Base(cleaned)
	parent := filepath.Dir(cleaned)
	if name == string(filepath.Separator) || name == "." || parent == cleaned {
		return Entry{}, apperr.Path("entry", path, nil)
	}
	return Entry{
		Parent: parent,
		Name:   name,
		IsFile: isFile(cleaned),
	}, nil
}

// FullPath joins the parent directory and the entry name. For the
// synthetic ".." shortcut the join collapses to the parent directory.
func (e Entry) FullPath() string {
	return filepath.Join(e.Parent, e.Name)
}

// Canonical resolves the entry's full path, following symlinks and
// collapsing "..". It fails with a Path error when the target no longer
// exists, which is how stale cache entries are detected.
func (e Entry) Canonical() (string, error) {
	resolved, err := filepath.EvalSymlinks(e.FullPath())
	if err != nil {
		return "", apperr.Path("canonicalize", e.FullPath(), err)
	}
	if !filepath.IsAbs(resolved) {
		resolved, err = filepath.Abs(resolved)
		if err != nil {
			return "", apperr.Path("canonicalize", e.FullPath(), err)
		}
	}
	return resolved, nil
}

// RelativeTo renders the entry relative to an ancestor directory:
// "nested/deep/file.txt" for flattened entries, a bare name otherwise.
// It fails with a Path error when base is not actually an ancestor,
// which can happen when a cached view dangles after an external move.
func (e Entry) RelativeTo(base string) (string, error) {
	if e.Parent == base {
		return e.Name, nil
	}
	prefix := base + string(filepath.Separator)
	if !strings.HasPrefix(e.Parent, prefix) {
		return "", apperr.Path("relative", e.FullPath(), nil)
	}
	return filepath.Join(e.Parent[len(prefix):], e.Name), nil
}

// Depth counts how many directory levels below base the entry sits.
// Zero means a direct child.
func (e Entry) Depth(base string) (int, error) {
	rel, err := e.RelativeTo(base)
	if err != nil {
		return 0, err
	}
	return strings.Count(rel, string(filepath.Separator)), nil
}
