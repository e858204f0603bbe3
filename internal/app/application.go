// Package app wires the engine, state machine and presentation layers
// into the running application.
package app

import (
	"go.uber.org/zap"

	"github.com/gdamore/tcell/v2"

	"github.com/okabe-dev/peruse/internal/config"
	"github.com/okabe-dev/peruse/internal/engine"
	"github.com/okabe-dev/peruse/internal/nav"
	"github.com/okabe-dev/peruse/internal/preview"
	inputui "github.com/okabe-dev/peruse/internal/ui/input"
	renderui "github.com/okabe-dev/peruse/internal/ui/render"
)

// Application owns the screen and the single-mutator event loop.
type Application struct {
	screen   tcell.Screen
	log      *zap.Logger
	state    *nav.State
	browser  *engine.Browser
	renderer *renderui.Renderer
	input    *inputui.Handler
}

// NewApplication initializes the terminal and all components, starting
// in startDir.
func NewApplication(startDir string, cfg config.Config, log *zap.Logger) (*Application, error) {
	if log == nil {
		log = zap.NewNop()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	state := nav.NewState()
	eng, err := engine.New(startDir, state, engine.Options{
		CacheSize: cfg.CacheSize,
		Logger:    log,
	})
	if err != nil {
		screen.Fini()
		return nil, err
	}

	loader := preview.NewLoader(cfg.Style)
	loader.MaxSize = cfg.MaxFileSize
	browser := engine.NewBrowser(eng, state, engine.LoaderFunc(
		func(path string) (engine.FileDocument, error) {
			ft, err := loader.Load(path)
			if err != nil {
				return nil, err
			}
			return ft, nil
		}), log)

	return &Application{
		screen:   screen,
		log:      log,
		state:    state,
		browser:  browser,
		renderer: renderui.NewRenderer(screen),
		input:    inputui.NewHandler(browser, state, log),
	}, nil
}

// CurrentDirectory exposes the directory being browsed, reported on
// exit.
func (app *Application) CurrentDirectory() string {
	return app.browser.Engine().CurrentDirectory()
}

// Close releases the terminal.
func (app *Application) Close() {
	app.screen.Fini()
}
