package nav

import "testing"

func TestInitialState(t *testing.T) {
	s := NewState()
	if !s.IsEdit() {
		t.Errorf("expected initial input mode Edit")
	}
	if s.View() != Search {
		t.Errorf("expected initial view Search, got %v", s.View())
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name      string
		apply     func(*State)
		wantInput InputMode
		wantView  ViewMode
	}{
		{"to_search", (*State).ToSearch, Normal, Search},
		{"to_search_edit", (*State).ToSearchEdit, Edit, Search},
		{"to_history_search", (*State).ToHistorySearch, Edit, HistoryFolderView},
		{"to_file_view", (*State).ToFileView, Normal, FileView},
	}

	for _, tt := range tests {
		s := NewState()
		tt.apply(s)
		if s.Input() != tt.wantInput || s.View() != tt.wantView {
			t.Errorf("%s: got (%v, %v), want (%v, %v)",
				tt.name, s.Input(), s.View(), tt.wantInput, tt.wantView)
		}
	}
}

func TestPredicates(t *testing.T) {
	s := NewState()
	s.ToHistorySearch()
	if !s.IsEdit() || !s.IsHistorySearch() || s.IsFileView() {
		t.Errorf("history search predicates wrong: edit=%v history=%v file=%v",
			s.IsEdit(), s.IsHistorySearch(), s.IsFileView())
	}

	s.ToFileView()
	if s.IsEdit() || s.IsHistorySearch() || !s.IsFileView() {
		t.Errorf("file view predicates wrong")
	}
}

func TestRestorePrevious(t *testing.T) {
	s := NewState()
	s.ToSearch()   // Normal+Search, prev = Edit+Search
	s.ToFileView() // Normal+FileView, prev = Normal+Search

	s.RestorePrevious()
	if s.Input() != Normal || s.View() != Search {
		t.Errorf("restore: got (%v, %v), want (Normal, Search)", s.Input(), s.View())
	}
}

// RestorePrevious does not save a new previous state, so it cannot be
// chained further back than one step.
func TestRestorePreviousSingleLevel(t *testing.T) {
	s := NewState()
	s.ToSearch()
	s.ToFileView()

	s.RestorePrevious()
	s.RestorePrevious()
	if s.Input() != Normal || s.View() != Search {
		t.Errorf("second restore moved state: got (%v, %v)", s.Input(), s.View())
	}
}
