package engine

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/okabe-dev/peruse/internal/nav"
)

// FileDocument is loaded file content ready for display. The concrete
// type belongs to the preview layer; the engine only needs the metrics
// that bound scrolling.
type FileDocument interface {
	RowCount() int
	MaxLineWidth() int
}

// FileLoader loads and formats a file for viewing. Oversized or
// unparsable files fail with Path/Parse errors.
type FileLoader interface {
	Load(path string) (FileDocument, error)
}

// LoaderFunc adapts a plain function to FileLoader.
type LoaderFunc func(path string) (FileDocument, error)

// Load calls f.
func (f LoaderFunc) Load(path string) (FileDocument, error) { return f(path) }

// Browser sits between the input layer and the Engine: it owns the raw
// highlight index, the opened-file state with its scroll offsets, and
// the submit policy that turns a resolved path into a navigation or a
// file view.
type Browser struct {
	log    *zap.Logger
	state  *nav.State
	engine *Engine
	loader FileLoader

	rawIndex int

	openedPath string
	doc        FileDocument
	vScroll    int
	hScroll    int
}

// NewBrowser wires a Browser over an existing engine.
func NewBrowser(e *Engine, state *nav.State, loader FileLoader, log *zap.Logger) *Browser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Browser{log: log, state: state, engine: e, loader: loader}
}

// Engine exposes the underlying engine for rendering.
func (b *Browser) Engine() *Engine { return b.engine }

// OpenedPath returns the path of the file being viewed, or "".
func (b *Browser) OpenedPath() string { return b.openedPath }

// Document returns the loaded file content, or nil.
func (b *Browser) Document() FileDocument { return b.doc }

// Scroll returns the file view's vertical and horizontal offsets.
func (b *Browser) Scroll() (v, h int) { return b.vScroll, b.hScroll }

// HighlightIndex returns the wrapped highlight position for rendering,
// or (0, false) when the selection is empty.
func (b *Browser) HighlightIndex() (int, bool) {
	n := len(b.engine.Selected())
	if n == 0 {
		return 0, false
	}
	idx, err := WrapIndex(b.rawIndex, n)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// MoveUp moves the highlight up one row; the wrap happens at render and
// submit time.
func (b *Browser) MoveUp() {
	if b.rawIndex > minInt {
		b.rawIndex--
	}
}

// MoveDown moves the highlight down one row.
func (b *Browser) MoveDown() {
	if b.rawIndex < maxInt {
		b.rawIndex++
	}
}

// ResetIndex puts the highlight back on the first row.
func (b *Browser) ResetIndex() { b.rawIndex = 0 }

// Update applies a filter change and resets the highlight.
func (b *Browser) Update(filter *string) error {
	if err := b.engine.Update(filter); err != nil {
		return err
	}
	b.ResetIndex()
	return nil
}

// Expand flattens one more level into the current view.
func (b *Browser) Expand() error { return b.engine.Expand() }

// Collapse re-folds the view one level shallower.
func (b *Browser) Collapse() error { return b.engine.Collapse() }

// Refresh re-reads the current directory from disk.
func (b *Browser) Refresh() error { return b.engine.Refresh() }

// Reset clears the filter, the file view and the highlight. Used when
// switching modes.
func (b *Browser) Reset() error {
	b.CloseFile()
	b.ResetIndex()
	empty := ""
	return b.engine.Update(&empty)
}

// CloseFile drops the opened file and its scroll state.
func (b *Browser) CloseFile() {
	b.openedPath = ""
	b.doc = nil
	b.vScroll = 0
	b.hScroll = 0
}

// Submit activates the highlighted entry. A directory becomes the new
// current directory (leaving history mode if needed); a file is loaded
// into the file view. A stale path is recovered locally: dropped from
// the history in history mode, or answered with a refresh in browse
// mode, so the list corrects itself on the next render.
func (b *Browser) Submit() error {
	selected := b.engine.Selected()
	if len(selected) == 0 {
		return nil
	}
	index, err := WrapIndex(b.rawIndex, len(selected))
	if err != nil {
		return err
	}

	path, err := b.engine.Submit(index)
	if err != nil {
		return b.recoverStale(index, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return b.recoverStale(index, err)
	}

	if info.IsDir() {
		if b.state.IsHistorySearch() {
			b.state.ToSearch()
		}
		if err := b.engine.Enter(path); err != nil {
			return err
		}
		b.ResetIndex()
		return nil
	}

	doc, err := b.loader.Load(path)
	if err != nil {
		return err
	}
	b.doc = doc
	b.openedPath = path
	b.vScroll = 0
	b.hScroll = 0
	b.state.ToFileView()
	return nil
}

func (b *Browser) recoverStale(index int, cause error) error {
	if b.state.IsHistorySearch() {
		b.log.Warn("stale history entry", zap.Int("index", index), zap.Error(cause))
		return b.engine.DropInvalid(index)
	}
	b.log.Warn("stale listing entry, refreshing", zap.Error(cause))
	return b.engine.Refresh()
}

// ToParent ascends one directory level.
func (b *Browser) ToParent() error {
	if err := b.engine.Enter(parentOf(b.engine.CurrentDirectory())); err != nil {
		return err
	}
	b.ResetIndex()
	return nil
}

// Delete removes the highlighted file or directory from disk, then
// refreshes. Removal failures are logged and swallowed; they must not
// corrupt cache state.
func (b *Browser) Delete() error {
	selected := b.engine.Selected()
	if len(selected) == 0 {
		return nil
	}
	index, err := WrapIndex(b.rawIndex, len(selected))
	if err != nil {
		return err
	}
	path, err := b.engine.Submit(index)
	if err != nil {
		return nil
	}

	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			err = os.RemoveAll(path)
		} else {
			err = os.Remove(path)
		}
	}
	if err != nil {
		b.log.Warn("delete failed", zap.String("path", path), zap.Error(err))
	}
	return b.engine.Refresh()
}

// ScrollDown moves the file view down, clamped to the row count.
func (b *Browser) ScrollDown(step int) {
	if b.doc == nil {
		return
	}
	b.vScroll = clamp(b.vScroll+step, 0, b.doc.RowCount())
}

// ScrollUp moves the file view up.
func (b *Browser) ScrollUp(step int) {
	b.vScroll = clamp(b.vScroll-step, 0, b.vScroll)
}

// ScrollRight moves the file view right, clamped to the widest line.
func (b *Browser) ScrollRight(step int) {
	if b.doc == nil {
		return
	}
	b.hScroll = clamp(b.hScroll+step, 0, b.doc.MaxLineWidth())
}

// ScrollLeft moves the file view left.
func (b *Browser) ScrollLeft(step int) {
	b.hScroll = clamp(b.hScroll-step, 0, b.hScroll)
}

// ScrollHome jumps to the top-left of the file view.
func (b *Browser) ScrollHome() {
	b.vScroll = 0
	b.hScroll = 0
}

// ScrollEnd jumps near the bottom of the file view.
func (b *Browser) ScrollEnd(page int) {
	if b.doc == nil {
		return
	}
	b.vScroll = clamp(b.doc.RowCount()-page, 0, b.doc.RowCount())
}

func parentOf(dir string) string {
	return filepath.Dir(dir)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)
