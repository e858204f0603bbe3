// Package input converts tcell key events into engine operations. One
// handler per reachable state keeps the bindings in the same shape as
// the mode diagram.
package input

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/okabe-dev/peruse/internal/engine"
	"github.com/okabe-dev/peruse/internal/nav"
)

const fileViewPage = 30

// Handler routes key events to the browser according to the current
// mode. Engine errors are logged and surfaced through Status; they
// never abort the loop.
type Handler struct {
	browser *engine.Browser
	state   *nav.State
	log     *zap.Logger
	status  string
}

// NewHandler wires a handler over the browser and state machine.
func NewHandler(b *engine.Browser, state *nav.State, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{browser: b, state: state, log: log}
}

// Status returns the last operation failure, or "" when the previous
// key was handled cleanly.
func (h *Handler) Status() string { return h.status }

// HandleKey processes one key event. It returns false when the
// application should quit.
func (h *Handler) HandleKey(ev *tcell.EventKey) bool {
	h.status = ""

	// Ctrl+C quits in every mode. Ctrl+Z is deliberately unbound so the
	// terminal's suspend handling stays in charge of it.
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}

	var cont bool
	var err error
	switch {
	case h.state.IsFileView():
		cont = h.handleFileView(ev)
	case h.state.IsHistorySearch():
		cont, err = h.handleHistorySearch(ev)
	case h.state.IsEdit():
		cont, err = h.handleEditSearch(ev)
	default:
		cont, err = h.handleNormalSearch(ev)
	}

	if err != nil {
		h.status = err.Error()
		h.log.Warn("operation failed", zap.Error(err))
	}
	return cont
}

func (h *Handler) handleNormalSearch(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyTab:
		h.state.ToSearchEdit()
	case tcell.KeyUp:
		h.browser.MoveUp()
	case tcell.KeyDown:
		h.browser.MoveDown()
	case tcell.KeyEnter:
		return true, h.submit()
	case tcell.KeyCtrlD:
		return true, h.browser.Delete()
	case tcell.KeyCtrlK:
		return true, h.browser.ToParent()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false, nil
		case 'u':
			return true, h.browser.Refresh()
		case 'h':
			h.state.ToHistorySearch()
			return true, h.browser.Reset()
		case 'e':
			return true, h.browser.Expand()
		case 'c':
			return true, h.browser.Collapse()
		case 'k':
			h.browser.MoveUp()
		case 'j':
			h.browser.MoveDown()
		}
	}
	return true, nil
}

func (h *Handler) handleEditSearch(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyTab:
		h.state.ToSearch()
	case tcell.KeyUp:
		h.browser.MoveUp()
	case tcell.KeyDown:
		h.browser.MoveDown()
	case tcell.KeyEnter:
		return true, h.submit()
	case tcell.KeyCtrlU:
		return true, h.setFilter("")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return true, h.setFilter(trimLastRune(h.browser.Engine().Filter()))
	case tcell.KeyRune:
		return true, h.setFilter(h.browser.Engine().Filter() + string(ev.Rune()))
	}
	return true, nil
}

func (h *Handler) handleHistorySearch(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyTab:
		h.state.ToSearch()
		return true, h.browser.Reset()
	case tcell.KeyUp:
		h.browser.MoveUp()
	case tcell.KeyDown:
		h.browser.MoveDown()
	case tcell.KeyEnter:
		return true, h.submit()
	case tcell.KeyCtrlU:
		return true, h.setFilter("")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return true, h.setFilter(trimLastRune(h.browser.Engine().Filter()))
	case tcell.KeyRune:
		return true, h.setFilter(h.browser.Engine().Filter() + string(ev.Rune()))
	}
	return true, nil
}

func (h *Handler) handleFileView(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		h.browser.ScrollUp(1)
	case tcell.KeyDown:
		h.browser.ScrollDown(1)
	case tcell.KeyLeft:
		h.browser.ScrollLeft(1)
	case tcell.KeyRight:
		h.browser.ScrollRight(1)
	case tcell.KeyPgUp:
		h.browser.ScrollUp(fileViewPage)
	case tcell.KeyPgDn:
		h.browser.ScrollDown(fileViewPage)
	case tcell.KeyHome:
		h.browser.ScrollHome()
	case tcell.KeyEnd:
		h.browser.ScrollEnd(fileViewPage)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			h.browser.CloseFile()
			h.state.RestorePrevious()
		case 'k':
			h.browser.ScrollUp(1)
		case 'j':
			h.browser.ScrollDown(1)
		case 'h':
			h.browser.ScrollLeft(1)
		case 'l':
			h.browser.ScrollRight(1)
		}
	}
	return true
}

// submit activates the highlighted entry, then clears the filter unless
// the submit opened a file (the file view keeps its own state).
func (h *Handler) submit() error {
	if err := h.browser.Submit(); err != nil {
		return err
	}
	if !h.state.IsFileView() {
		return h.setFilter("")
	}
	return nil
}

func (h *Handler) setFilter(query string) error {
	return h.browser.Update(&query)
}

func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
