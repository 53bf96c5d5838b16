package pipeline

import (
	"image"

	"github.com/disintegration/imaging"
)

// Resize reduces img to fit within maxDimension, preserving aspect ratio.
// Images already within the limit are returned unchanged; there is no
// upscaling, ever.
func Resize(img image.Image, maxDimension int) image.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	if w <= 0 || h <= 0 {
		return img
	}

	if w <= maxDimension && h <= maxDimension {
		return img
	}

	nw, nh := calculateDimensions(w, h, maxDimension)
	return imaging.Resize(img, nw, nh, imaging.Lanczos)
}

// calculateDimensions scales so the longer side equals maxDim and the
// shorter side is rounded to the nearest integer pixel (minimum 1).
// Square images over the limit are governed by width.
func calculateDimensions(origWidth, origHeight, maxDim int) (int, int) {
	if origWidth <= 0 || origHeight <= 0 || maxDim <= 0 {
		return origWidth, origHeight
	}
	if origWidth <= maxDim && origHeight <= maxDim {
		return origWidth, origHeight
	}
	if origWidth >= origHeight {
		newH := (origHeight*maxDim + origWidth/2) / origWidth
		if newH < 1 {
			newH = 1
		}
		return maxDim, newH
	}
	newW := (origWidth*maxDim + origHeight/2) / origHeight
	if newW < 1 {
		newW = 1
	}
	return newW, maxDim
}
