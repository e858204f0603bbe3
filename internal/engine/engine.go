// Package engine owns the directory listing cache and answers "what
// should be visible right now" under a fuzzy filter, across two
// browsing modes: the current directory's (possibly flattened)
// children, and the history of every directory still present in the
// LRU cache.
package engine

import (
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/okabe-dev/peruse/internal/apperr"
	"github.com/okabe-dev/peruse/internal/fs"
	"github.com/okabe-dev/peruse/internal/nav"
	"github.com/okabe-dev/peruse/internal/search"
)

// DefaultCacheSize bounds how many directory snapshots are retained.
const DefaultCacheSize = 100

// Options tunes engine construction.
type Options struct {
	CacheSize int
	Logger    *zap.Logger
}

// Engine maintains the bounded snapshot cache, the current directory's
// flattened view, and the filtered selection. All operations are
// synchronous and must be invoked by a single mutator.
type Engine struct {
	log   *zap.Logger
	state *nav.State
	cache *lru.Cache[string, *fs.Snapshot]

	currentDir  string
	children    []fs.Entry
	expandLevel int
	filter      string
	selected    []fs.Entry

	// dropping marks an intentional removal so the eviction callback
	// does not misreport a stale drop as a cold eviction.
	dropping bool
}

// New canonicalizes startDir, loads its snapshot into a fresh cache and
// computes the initial selection.
func New(startDir string, state *nav.State, opts Options) (*Engine, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{log: log, state: state}
	cache, err := lru.NewWithEvict[string, *fs.Snapshot](size, e.onEvict)
	if err != nil {
		return nil, apperr.Parse("cache init", err)
	}
	e.cache = cache

	canon, err := canonicalDir(startDir)
	if err != nil {
		return nil, err
	}
	if err := e.Enter(canon); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) onEvict(dir string, _ *fs.Snapshot) {
	if e.dropping {
		return
	}
	e.log.Info("evicted cold cache entry", zap.String("dir", dir))
}

// CurrentDirectory returns the canonical path of the directory being
// browsed.
func (e *Engine) CurrentDirectory() string { return e.currentDir }

// Selected returns the filtered view for rendering. The slice is a
// cached projection of (filter, children|cache keys); callers must not
// mutate it.
func (e *Engine) Selected() []fs.Entry { return e.selected }

// Filter returns the active filter string.
func (e *Engine) Filter() string { return e.filter }

// ExpandLevel returns how many expand operations are in effect.
func (e *Engine) ExpandLevel() int { return e.expandLevel }

// loadOrGet returns the cached snapshot for dir, reading and inserting
// it on a miss. A hit marks the entry most-recently-used. Read failures
// propagate without touching cache state for that key.
func (e *Engine) loadOrGet(dir string) (*fs.Snapshot, error) {
	if snap, ok := e.cache.Get(dir); ok {
		return snap, nil
	}
	snap, err := fs.ReadSnapshot(dir, true)
	if err != nil {
		return nil, err
	}
	e.cache.Add(dir, snap)
	return snap, nil
}

// Enter makes path the current directory: loads-or-gets its snapshot,
// clears the filter, resets the expand level and recomputes the
// selection. path must already be canonical.
func (e *Engine) Enter(path string) error {
	snap, err := e.loadOrGet(path)
	if err != nil {
		return err
	}
	e.currentDir = path
	e.children = append([]fs.Entry(nil), snap.Entries...)
	e.filter = ""
	e.expandLevel = 0
	return e.Update(nil)
}

// Update recomputes the selection. A non-nil filter replaces the active
// one first. In history mode the selection is drawn from the cache's
// keys, most-recently-used first; otherwise from the current children
// rendered relative to the current directory. Idempotent and free of
// side effects beyond repopulating the selection.
func (e *Engine) Update(filter *string) error {
	if filter != nil {
		e.filter = *filter
	}

	var sel []fs.Entry
	if e.state.IsHistorySearch() {
		keys := e.cache.Keys() // oldest first
		for i := len(keys) - 1; i >= 0; i-- {
			if !search.Matches(keys[i], e.filter) {
				continue
			}
			if filepath.Dir(keys[i]) == keys[i] {
				// The filesystem root has no parent/name split.
				sel = append(sel, fs.Entry{Parent: keys[i]})
				continue
			}
			ent, err := fs.NewEntry(keys[i])
			if err != nil {
				return err
			}
			sel = append(sel, ent)
		}
	} else {
		for _, child := range e.children {
			rel, err := child.RelativeTo(e.currentDir)
			if err != nil {
				return err
			}
			if search.Matches(rel, e.filter) {
				sel = append(sel, child)
			}
		}
	}
	e.selected = sel
	return nil
}

// Expand flattens one more tree level into the current view: every
// visible directory (except the fixed ".." shortcut at element 0) is
// replaced in place by its own children. Sub-reads are not cached and
// carry no parent shortcut. Repeated calls deepen the flattening
// because each call expands whatever is currently visible.
func (e *Engine) Expand() error {
	if len(e.children) == 0 {
		return nil
	}

	flat := make([]fs.Entry, 0, len(e.children))
	flat = append(flat, e.children[0])
	for _, child := range e.children[1:] {
		target, err := child.Canonical()
		if err != nil {
			// Entry went stale mid-expand; drop it from the view.
			continue
		}
		info, statErr := os.Stat(target)
		if statErr != nil || !info.IsDir() {
			ent, err := fs.NewEntry(target)
			if err != nil {
				return err
			}
			flat = append(flat, ent)
			continue
		}
		snap, err := fs.ReadSnapshot(target, false)
		if err != nil {
			return err
		}
		flat = append(flat, snap.Entries...)
	}

	e.children = flat
	if err := e.Update(nil); err != nil {
		return err
	}
	e.expandLevel++
	return nil
}

// Collapse re-folds the flattened view one level shallower: entries
// deeper than the new level are replaced by their parent directory,
// deduplicated by canonical path. This is a lossy level-indexed
// re-fold, not a stored undo stack; collapsing past level 0 is a no-op.
func (e *Engine) Collapse() error {
	if e.expandLevel == 0 {
		return nil
	}
	e.expandLevel--

	folded := make([]fs.Entry, 0, len(e.children))
	folded = append(folded, e.children[0])
	seen := make(map[string]struct{}, len(e.children))
	for _, child := range e.children[1:] {
		depth, err := child.Depth(e.currentDir)
		if err != nil {
			return err
		}

		var key string
		if depth > e.expandLevel {
			key, err = canonicalDir(child.Parent)
		} else {
			key, err = child.Canonical()
		}
		if err != nil {
			return err
		}

		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ent, err := fs.NewEntry(key)
		if err != nil {
			return err
		}
		folded = append(folded, ent)
	}

	e.children = folded
	return e.Update(nil)
}

// Submit resolves selected[index] to a canonical path. It fails with a
// Path error when the target no longer exists on disk, e.g. after an
// external delete. Recovery policy belongs to the caller: drop the
// entry in history mode, refresh the listing in browse mode.
func (e *Engine) Submit(index int) (string, error) {
	if index < 0 || index >= len(e.selected) {
		return "", apperr.Parse("submit", errIndexOutOfRange)
	}
	return e.selected[index].Canonical()
}

// DropInvalid removes a stale history entry from both the selection and
// the cache so it does not resurface. Only legal in history mode.
func (e *Engine) DropInvalid(index int) error {
	if !e.state.IsHistorySearch() {
		return apperr.State("drop invalid folder outside history mode")
	}
	if index < 0 || index >= len(e.selected) {
		return apperr.Parse("drop invalid folder", errIndexOutOfRange)
	}

	removed := e.selected[index]
	e.selected = append(e.selected[:index:index], e.selected[index+1:]...)

	key := removed.FullPath()
	e.dropping = true
	present := e.cache.Remove(key)
	e.dropping = false
	if !present {
		return apperr.Cache("drop invalid folder", key)
	}
	e.log.Info("dropped stale history entry", zap.String("dir", key))
	return nil
}

// Refresh force-reloads the current directory from disk, replacing its
// cache entry and rebuilding the view. Used for the explicit update key
// and as the stale-entry recovery path in browse mode.
func (e *Engine) Refresh() error {
	snap, err := fs.ReadSnapshot(e.currentDir, true)
	if err != nil {
		return err
	}
	e.children = append([]fs.Entry(nil), snap.Entries...)
	e.expandLevel = 0
	e.cache.Add(e.currentDir, snap)
	return e.Update(nil)
}

// Peek returns the current directory's snapshot without touching its
// recency, for rendering the load timestamp. A miss is a broken
// invariant: the current directory is always supposed to be cached.
func (e *Engine) Peek() (*fs.Snapshot, error) {
	snap, ok := e.cache.Peek(e.currentDir)
	if !ok {
		return nil, apperr.Cache("peek", e.currentDir)
	}
	return snap, nil
}

// HistoryLen reports how many directories the cache currently holds.
func (e *Engine) HistoryLen() int { return e.cache.Len() }

// canonicalDir resolves a directory path to its canonical absolute
// form, the shape used for all cache keys.
func canonicalDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", apperr.Path("canonicalize", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", apperr.Path("canonicalize", path, err)
	}
	return resolved, nil
}
