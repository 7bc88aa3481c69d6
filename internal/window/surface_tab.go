package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-surface/internal/host"
)

const tileSize = 96

// ============ SURFACE TAB ============

func (mw *MainWindow) createSurfaceTab() fyne.CanvasObject {
	hint := widget.NewLabel("Click to press, scroll or right-click to turn")

	h := mw.engine.Host()
	tiles := make([]fyne.CanvasObject, 0, len(h.Controls()))

	mw.tilesMu.Lock()
	for _, c := range h.Controls() {
		id := c.ID()
		tile := newFaceTile(
			func() { h.Dispatch(host.Event{ControlID: id, Kind: host.Press}) },
			func(ticks int) { h.Dispatch(host.Event{ControlID: id, Kind: host.Rotate, Ticks: ticks}) },
		)
		mw.tiles[id] = tile
		tiles = append(tiles, tile)
	}
	mw.tilesMu.Unlock()

	grid := container.NewGridWrap(fyne.NewSize(tileSize, tileSize), tiles...)
	return container.NewBorder(hint, nil, nil, nil, container.NewVScroll(grid))
}
