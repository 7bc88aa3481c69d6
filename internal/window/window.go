package window

import (
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-surface/internal/app"
	"github.com/PixPMusic/gopher-surface/internal/config"
	"github.com/PixPMusic/gopher-surface/internal/host"
	"github.com/PixPMusic/gopher-surface/internal/midi"
	"github.com/PixPMusic/gopher-surface/internal/render"
	"github.com/PixPMusic/gopher-surface/internal/surface"
)

// MainWindow manages the main application window
type MainWindow struct {
	window      fyne.Window
	fyneApp     fyne.App
	cfg         *config.Config
	midiManager *midi.Manager
	engine      *app.App
	renderer    *render.Renderer
	deviceList  *widget.List
	onSave      func()

	// Surface tab state, keyed by control ID
	tilesMu sync.RWMutex
	tiles   map[string]*faceTile
}

// NewMainWindow creates the main application window and attaches it to the
// surface as a renderer
func NewMainWindow(fyneApp fyne.App, cfg *config.Config, midiManager *midi.Manager, engine *app.App, onSave func()) (*MainWindow, error) {
	renderer, err := render.New(render.DefaultFontSize)
	if err != nil {
		return nil, err
	}

	win := fyneApp.NewWindow("GopherSurface")

	mw := &MainWindow{
		window:      win,
		fyneApp:     fyneApp,
		cfg:         cfg,
		midiManager: midiManager,
		engine:      engine,
		renderer:    renderer,
		onSave:      onSave,
		tiles:       make(map[string]*faceTile),
	}

	mw.setupUI()
	engine.Host().Attach(host.RendererFunc(mw.renderFace))

	win.Resize(fyne.NewSize(820, 560))
	win.CenterOnScreen()

	win.SetCloseIntercept(func() {
		win.Hide()
	})

	return mw, nil
}

func (mw *MainWindow) setupUI() {
	surfaceTab := container.NewTabItem("Surface", mw.createSurfaceTab())
	devicesTab := container.NewTabItem("Devices", mw.createDevicesTab())

	tabs := container.NewAppTabs(surfaceTab, devicesTab)
	tabs.SetTabLocation(container.TabLocationTop)

	mw.window.SetContent(tabs)
}

// renderFace is called from the host goroutine
func (mw *MainWindow) renderFace(controlID string, face surface.Face) {
	mw.tilesMu.RLock()
	tile := mw.tiles[controlID]
	mw.tilesMu.RUnlock()
	if tile == nil {
		return
	}

	img, err := mw.renderer.Render(face, tileSize, tileSize)
	if err != nil {
		slog.Warn("failed to render face", "control", controlID, "err", err)
		return
	}
	fyne.Do(func() {
		tile.setImage(img)
	})
}

// Show displays the window
func (mw *MainWindow) Show() {
	mw.deviceList.Refresh()
	mw.window.Show()
}

// Hide hides the window
func (mw *MainWindow) Hide() {
	mw.window.Hide()
}

// Window returns the underlying fyne.Window
func (mw *MainWindow) Window() fyne.Window {
	return mw.window
}
