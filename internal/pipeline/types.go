package pipeline

import (
	"errors"
	"image"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidSurface       = errors.New("image has zero width or height")
	ErrNothingProcessed     = errors.New("no supported files produced output")
	ErrUnsupportedDocument  = errors.New("file is not a readable PDF document")
)

// Default maximum dimension (width or height) accepted by the decoder.
const MaxDecodeDimension = 8000

// InputItem is one file submitted to an image batch. Immutable once read.
type InputItem struct {
	Name      string
	MediaType string
	Data      []byte
}

// OutputItem is one WebP result plus its download metadata.
// PageNumber and ImageIndex are zero for image-batch outputs.
type OutputItem struct {
	Name         string
	Data         []byte
	OriginalSize int
	EncodedSize  int
	PageNumber   int
	ImageIndex   int
}

// Options carries the tuning constants for both pipelines.
type Options struct {
	MaxDimension int     // image batch: longest side after resize
	Quality      int     // WebP quality, 0-100
	RasterScale  float64 // PDF render: scale applied at rasterization
}

// DefaultOptions returns the production constants.
func DefaultOptions() Options {
	return Options{
		MaxDimension: 1600,
		Quality:      DefaultWebPQuality,
		RasterScale:  2.0,
	}
}

// Codec decodes input bytes to a pixel surface and encodes surfaces to WebP.
type Codec interface {
	Decode(data []byte, mediaType string) (image.Image, error)
	Encode(img image.Image, quality int) ([]byte, error)
}

// Rasterizer opens a PDF for page-by-page rendering.
type Rasterizer interface {
	Open(pdf []byte) (Document, error)
}

// Document is an open PDF. Callers must Close it on every exit path.
type Document interface {
	PageCount() int
	// RenderPage renders the 1-based page at the given scale factor.
	RenderPage(page int, scale float64) (image.Image, error)
	Close() error
}
