//go:build desktop

package host

import (
	"context"
	"fmt"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/slidescope/desktop/internal/common/logger"
)

// DesktopAvailable reports whether the windowed runtime is compiled in.
const DesktopAvailable = true

// Desktop runs a fyne window as the application's main loop.
type Desktop struct {
	logger *logger.Logger
}

// NewDesktop creates a desktop runtime.
func NewDesktop(log *logger.Logger) *Desktop {
	if log == nil {
		log = logger.Default()
	}
	return &Desktop{logger: log.WithComponent("desktop-runtime")}
}

// Name implements Runtime.
func (d *Desktop) Name() string {
	return ModeDesktop
}

// Run implements Runtime. Setup runs after the app and window exist but
// before the window is shown.
//
// fyne exits the process itself when it cannot open a window, so the display
// is checked up front and reported as a RUNTIME_START_FAILURE before setup
// has spawned anything.
func (d *Desktop) Run(ctx context.Context, hc *Context, setup SetupFunc) error {
	if err := hostDisplay(); err != nil {
		return err
	}

	a, w := d.initWindow(hc)

	if setup != nil {
		if err := setup(ctx, hc); err != nil {
			return err
		}
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			d.logger.Info("context cancelled, quitting desktop runtime")
			a.Quit()
		case <-done:
		}
	}()

	d.logger.Info("desktop runtime ready",
		zap.String("title", hc.Title),
		zap.String("frontend_url", hc.FrontendURL))
	w.ShowAndRun()
	return nil
}

// initWindow creates the fyne app and main window.
func (d *Desktop) initWindow(hc *Context) (fyne.App, fyne.Window) {
	var a fyne.App
	if hc.AppID != "" {
		a = app.NewWithID(hc.AppID)
	} else {
		a = app.New()
	}

	w := a.NewWindow(hc.Title)
	w.SetMaster()
	if hc.Width > 0 && hc.Height > 0 {
		w.Resize(fyne.NewSize(float32(hc.Width), float32(hc.Height)))
	}

	status := widget.NewLabel(fmt.Sprintf("%s %s", hc.Title, hc.Version))
	items := []fyne.CanvasObject{status}
	if u, perr := url.Parse(hc.FrontendURL); perr == nil && hc.FrontendURL != "" {
		items = append(items, widget.NewHyperlink("Open "+hc.FrontendURL, u))
	} else if perr != nil {
		d.logger.Warn("invalid frontend url", zap.String("url", hc.FrontendURL), zap.Error(perr))
	}
	w.SetContent(container.NewVBox(items...))

	return a, w
}
