// Package testutil provides in-memory image fixtures for handler and
// pipeline tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	webp "github.com/chai2010/webp"
)

// GradientImage builds a deterministic RGBA gradient so encoders have real
// content to work on.
func GradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8(128)
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	return img
}

// JPEGBytes encodes a gradient of the given size as JPEG.
func JPEGBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, GradientImage(width, height), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg fixture: %v", err)
	}
	return buf.Bytes()
}

// PNGBytes encodes a gradient of the given size as PNG.
func PNGBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, GradientImage(width, height)); err != nil {
		t.Fatalf("encode png fixture: %v", err)
	}
	return buf.Bytes()
}

// WebPBytes encodes a gradient of the given size as WebP.
func WebPBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := webp.Encode(&buf, GradientImage(width, height), &webp.Options{Quality: 80}); err != nil {
		t.Fatalf("encode webp fixture: %v", err)
	}
	return buf.Bytes()
}
