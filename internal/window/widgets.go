package window

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// ============ FACE TILE WIDGET ============

// faceTile shows one control face. Tap presses, secondary tap turns one tick
// counterclockwise and scrolling turns it either way.
type faceTile struct {
	widget.BaseWidget
	image *canvas.Image

	onTap    func()
	onRotate func(ticks int)
}

func newFaceTile(onTap func(), onRotate func(ticks int)) *faceTile {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, tileSize, tileSize)))
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(tileSize, tileSize))

	t := &faceTile{image: img, onTap: onTap, onRotate: onRotate}
	t.ExtendBaseWidget(t)
	return t
}

func (t *faceTile) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.image)
}

// setImage must run on the fyne goroutine
func (t *faceTile) setImage(img image.Image) {
	t.image.Image = img
	t.image.Refresh()
}

func (t *faceTile) Tapped(_ *fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}

func (t *faceTile) TappedSecondary(_ *fyne.PointEvent) {
	if t.onRotate != nil {
		t.onRotate(-1)
	}
}

func (t *faceTile) Scrolled(ev *fyne.ScrollEvent) {
	if t.onRotate == nil {
		return
	}
	switch {
	case ev.Scrolled.DY > 0:
		t.onRotate(1)
	case ev.Scrolled.DY < 0:
		t.onRotate(-1)
	}
}
