package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// redrawInterval keeps the frame fresh while idle (the listing title
// shows a load timestamp).
const redrawInterval = 200 * time.Millisecond

// Run drives the event loop until the user quits. Engine operations
// execute inline between polls; there is exactly one mutator per event.
func (app *Application) Run() {
	app.renderer.Render(app.browser, app.state)

	events := make(chan tcell.Event)
	go func() {
		for {
			events <- app.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(redrawInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !app.input.HandleKey(ev) {
					return
				}
				app.renderer.SetStatus(app.input.Status())
			case *tcell.EventResize:
				app.screen.Sync()
			}
		case <-ticker.C:
		}
		app.renderer.Render(app.browser, app.state)
	}
}
