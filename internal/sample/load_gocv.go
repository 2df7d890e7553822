//go:build gocv
// +build gocv

package sample

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Load reads a pre-captured image file through OpenCV and converts it to a
// 28x28 grayscale sample.
func Load(path string) (*[Pixels]uint8, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("open sample %s: failed to decode image", path)
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(Side, Side), 0, 0, gocv.InterpolationArea)

	v, err := resized.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("read sample %s: %w", path, err)
	}
	if len(v) != Pixels {
		return nil, fmt.Errorf("read sample %s: got %d pixels, want %d", path, len(v), Pixels)
	}
	var out [Pixels]uint8
	copy(out[:], v)
	return &out, nil
}
