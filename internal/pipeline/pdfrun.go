package pipeline

import (
	"errors"
	"fmt"
)

// RunDocument renders every page of a PDF at the configured raster scale and
// encodes each raster to WebP. Page rasters are not resized; the scale factor
// is the sizing policy for this pipeline.
//
// Unlike Run, a failure on any single page aborts the whole run: a partially
// rendered document is an ambiguous result, not a partial success.
func (o *Orchestrator) RunDocument(pdf []byte) ([]OutputItem, error) {
	if o.rast == nil {
		return nil, errors.New("no rasterizer configured")
	}

	doc, err := o.rast.Open(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedDocument, err)
	}
	defer doc.Close()

	pages := doc.PageCount()
	if pages <= 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrUnsupportedDocument)
	}

	outputs := make([]OutputItem, 0, pages)
	for page := 1; page <= pages; page++ {
		img, err := doc.RenderPage(page, o.opts.RasterScale)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", page, err)
		}
		b := img.Bounds()
		if b.Dx() <= 0 || b.Dy() <= 0 {
			return nil, fmt.Errorf("render page %d: %w", page, ErrInvalidSurface)
		}

		encoded, err := o.codec.Encode(img, o.opts.Quality)
		if err != nil {
			return nil, fmt.Errorf("encode page %d: %w", page, err)
		}

		outputs = append(outputs, OutputItem{
			Name:         PageImageName(page, 1),
			Data:         encoded,
			OriginalSize: len(pdf),
			EncodedSize:  len(encoded),
			PageNumber:   page,
			ImageIndex:   1,
		})
	}

	return outputs, nil
}
