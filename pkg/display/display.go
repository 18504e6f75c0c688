package display

import (
	"image/color"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
)

const (
	width  = 64
	height = 32

	// DefaultScale is the size of a CHIP-8 pixel on screen
	DefaultScale = 16
)

type Display struct {
	*pixelgl.Window
	title    string
	scale    float64
	beeping  bool
	fgColour pixel.RGBA
	bgColour color.Color
	imd      *imdraw.IMDraw
}

// NewDisplay opens a window sized for the 64x32 screen. It must be called
// from within pixelgl.Run().
func NewDisplay(title string, scale int) (*Display, error) {
	if scale < 1 {
		scale = DefaultScale
	}
	s := float64(scale)

	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, width*s, height*s),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, err
	}
	return &Display{
		Window:   win,
		title:    title,
		scale:    s,
		fgColour: pixel.RGB(1, 1, 1),
		bgColour: color.Black,
		imd:      imdraw.New(nil),
	}, nil
}

// Render draws the display buffer, indexed by y*64+x, and swaps buffers. With
// vsync enabled this blocks until the next frame.
func (d *Display) Render(pixels *[width * height]bool) {
	d.Clear(d.bgColour)
	d.imd.Clear()
	d.imd.Color = d.fgColour

	// Pixel's origin is the bottom left so the rows are flipped
	for i, on := range pixels {
		if !on {
			continue
		}
		x := float64(i % width)
		y := float64(height - 1 - i/width)
		d.imd.Push(pixel.V(d.scale*x, d.scale*y))
		d.imd.Push(pixel.V(d.scale*x+d.scale, d.scale*y+d.scale))
		d.imd.Rectangle(0)
	}

	d.imd.Draw(d)
	d.Update()
}

// SetBeep marks the window title while the sound timer is running.
func (d *Display) SetBeep(beeping bool) {
	if beeping == d.beeping {
		return
	}
	d.beeping = beeping
	if beeping {
		d.SetTitle(d.title + " *")
	} else {
		d.SetTitle(d.title)
	}
}
