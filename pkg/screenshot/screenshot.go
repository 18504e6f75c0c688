// Package screenshot saves the contents of the display buffer as a PNG image.
package screenshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

const (
	width  = 64
	height = 32
)

var (
	on  = color.Gray{Y: 0xFF}
	off = color.Gray{Y: 0x00}
)

// Image converts the display buffer to an image, each CHIP-8 pixel being
// scale pixels square.
func Image(pixels *[width * height]bool, scale int) (image.Image, error) {
	if scale < 1 {
		return nil, errors.Errorf("invalid scale (%d)", scale)
	}

	src := image.NewGray(image.Rect(0, 0, width, height))
	for i, p := range pixels {
		if p {
			src.SetGray(i%width, i/width, on)
		} else {
			src.SetGray(i%width, i/width, off)
		}
	}

	if scale == 1 {
		return src, nil
	}

	dst := image.NewGray(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Encode writes the display buffer to w as a PNG.
func Encode(w io.Writer, pixels *[width * height]bool, scale int) error {
	img, err := Image(pixels, scale)
	if err != nil {
		return errors.Wrap(err, "screenshot")
	}
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "screenshot")
	}
	return nil
}

// Save writes the display buffer to a timestamped PNG file in dir, returning
// the name of the file.
func Save(dir string, pixels *[width * height]bool, scale int) (string, error) {
	name := filepath.Join(dir, fmt.Sprintf("chip8_%s.png", time.Now().Format("20060102_150405")))

	f, err := os.Create(name)
	if err != nil {
		return "", errors.Wrap(err, "screenshot")
	}

	err = Encode(f, pixels, scale)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "screenshot")
	}
	if err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
