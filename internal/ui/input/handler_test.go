package input

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/okabe-dev/peruse/internal/engine"
	"github.com/okabe-dev/peruse/internal/nav"
)

func newHandler(t *testing.T) (*Handler, *nav.State) {
	t.Helper()
	state := nav.NewState()
	e, err := engine.New(t.TempDir(), state, engine.Options{})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	loader := engine.LoaderFunc(func(string) (engine.FileDocument, error) {
		return nil, errors.New("no viewer")
	})
	b := engine.NewBrowser(e, state, loader, zap.NewNop())
	return NewHandler(b, state, zap.NewNop()), state
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestCtrlCQuitsInEveryMode(t *testing.T) {
	h, state := newHandler(t)

	if h.HandleKey(key(tcell.KeyCtrlC)) {
		t.Error("Ctrl+C in edit mode did not quit")
	}
	state.ToSearch()
	if h.HandleKey(key(tcell.KeyCtrlC)) {
		t.Error("Ctrl+C in normal mode did not quit")
	}
}

// Ctrl+Z belongs to the terminal's job control; the handler must not
// treat it as a quit chord.
func TestCtrlZDoesNotQuit(t *testing.T) {
	h, state := newHandler(t)

	if !h.HandleKey(key(tcell.KeyCtrlZ)) {
		t.Error("Ctrl+Z in edit mode quit the application")
	}
	state.ToSearch()
	if !h.HandleKey(key(tcell.KeyCtrlZ)) {
		t.Error("Ctrl+Z in normal mode quit the application")
	}
}
