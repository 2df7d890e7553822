//go:build !gocv
// +build !gocv

package sample

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// Load reads a pre-captured image file and converts it to a 28x28 grayscale
// sample.
func Load(path string) (*[Pixels]uint8, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample %s: %w", path, err)
	}
	gray := imaging.Grayscale(img)
	if b := gray.Bounds(); b.Dx() != Side || b.Dy() != Side {
		gray = imaging.Resize(gray, Side, Side, imaging.Lanczos)
	}

	var out [Pixels]uint8
	for y := 0; y < Side; y++ {
		for x := 0; x < Side; x++ {
			out[y*Side+x] = gray.Pix[gray.PixOffset(x, y)]
		}
	}
	return &out, nil
}
