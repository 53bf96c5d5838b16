package pipeline

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// ApplyEXIFOrientation reads EXIF metadata from the original file bytes and
// applies the orientation transform to img. Images without parseable EXIF
// (PNG, WebP, stripped JPEG) are returned unchanged.
func ApplyEXIFOrientation(img image.Image, data []byte) image.Image {
	if img == nil || len(data) == 0 {
		return img
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return img
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return img
	}
	orient, err := tag.Int(0)
	if err != nil {
		return img
	}

	return orientationTransform(img, orient)
}

// orientationTransform applies the necessary flip/rotation for EXIF orientation
// values 1-8. Unknown values return the original image.
func orientationTransform(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Rotate270(imaging.FlipH(img))
	case 6:
		return imaging.Rotate90(img)
	case 7:
		return imaging.Rotate90(imaging.FlipH(img))
	case 8:
		return imaging.Rotate270(img)
	default:
		return img
	}
}
