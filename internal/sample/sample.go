// Package sample holds the pre-captured input image and its debug rendering.
package sample

import (
	"fmt"
	"io"
	"strings"
)

const (
	Side   = 28
	Pixels = Side * Side

	// inkThreshold separates "ink" from background in RenderASCII.
	inkThreshold = 100
)

// RenderASCII draws img as text, two characters per pixel.
func RenderASCII(w io.Writer, img *[Pixels]uint8) error {
	var b strings.Builder
	b.WriteString("\n--- INPUT IMAGE ---\n")
	for y := 0; y < Side; y++ {
		for x := 0; x < Side; x++ {
			if img[y*Side+x] > inkThreshold {
				b.WriteString("##")
			} else {
				b.WriteString("..")
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("-------------------\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// ExpectedLine describes the label a sample is known to carry.
func ExpectedLine(label int, name string) string {
	return fmt.Sprintf("Expected label: %d -> letter '%s'", label, name)
}
