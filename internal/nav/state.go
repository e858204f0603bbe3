// Package nav holds the (input mode × view mode) state machine that
// decides how key events are interpreted and which data source feeds
// the visible selection.
//
// Reachable states:
//
//	[Normal+Search] <---> [Edit+Search]
//	     |                     |
//	     v                     v
//	[Normal+FileView]   [Edit+HistoryFolderView]
//
// Every transition saves the pre-transition pair, so RestorePrevious
// can undo exactly one step. That is used to return from the file view
// to whichever search mode preceded it.
package nav

// InputMode controls how keyboard input is handled.
type InputMode int

const (
	// Normal is read-only mode with navigation shortcuts.
	Normal InputMode = iota
	// Edit is typing mode for search/filter queries.
	Edit
)

// ViewMode controls what content is displayed.
type ViewMode int

const (
	// Search browses the current directory under a filter.
	Search ViewMode = iota
	// FileView shows one file's contents.
	FileView
	// HistoryFolderView browses the cached directory history.
	HistoryFolderView
)

// State is the application mode with one level of restore.
type State struct {
	input     InputMode
	view      ViewMode
	prevInput InputMode
	prevView  ViewMode
}

// NewState starts in Edit+Search so the user can type a filter
// immediately.
func NewState() *State {
	return &State{input: Edit, view: Search}
}

// ToSearch transitions to Normal+Search.
func (s *State) ToSearch() {
	s.savePrevious()
	s.input = Normal
	s.view = Search
}

// ToSearchEdit transitions to Edit+Search.
func (s *State) ToSearchEdit() {
	s.savePrevious()
	s.input = Edit
	s.view = Search
}

// ToHistorySearch transitions to Edit+HistoryFolderView.
func (s *State) ToHistorySearch() {
	s.savePrevious()
	s.input = Edit
	s.view = HistoryFolderView
}

// ToFileView transitions to Normal+FileView.
func (s *State) ToFileView() {
	s.savePrevious()
	s.input = Normal
	s.view = FileView
}

// RestorePrevious sets the mode back to whatever preceded the last
// transition. It does not save a new previous state, so it cannot be
// chained more than one level deep.
func (s *State) RestorePrevious() {
	s.input = s.prevInput
	s.view = s.prevView
}

// Input returns the current input mode.
func (s *State) Input() InputMode { return s.input }

// View returns the current view mode.
func (s *State) View() ViewMode { return s.view }

// IsEdit reports whether the filter input is being edited.
func (s *State) IsEdit() bool { return s.input == Edit }

// IsHistorySearch reports whether the history view is active.
func (s *State) IsHistorySearch() bool { return s.view == HistoryFolderView }

// IsFileView reports whether a file is being viewed.
func (s *State) IsFileView() bool { return s.view == FileView }

func (s *State) savePrevious() {
	s.prevInput = s.input
	s.prevView = s.view
}
