// Package rasterize renders PDF pages to in-memory bitmaps using MuPDF.
package rasterize

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"webpmill/internal/pipeline"
)

// baseDPI is the PDF default rendering resolution; scale factors multiply it.
const baseDPI = 72.0

// Fitz implements pipeline.Rasterizer on top of go-fitz.
type Fitz struct{}

func New() Fitz {
	return Fitz{}
}

func (Fitz) Open(pdf []byte) (pipeline.Document, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return &document{doc: doc}, nil
}

type document struct {
	doc *fitz.Document
}

func (d *document) PageCount() int {
	return d.doc.NumPage()
}

// RenderPage renders the 1-based page at scale times the base 72 DPI.
func (d *document) RenderPage(page int, scale float64) (image.Image, error) {
	if page < 1 || page > d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", page, d.doc.NumPage())
	}
	if scale <= 0 {
		scale = 1
	}
	img, err := d.doc.ImageDPI(page-1, baseDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}
	return img, nil
}

func (d *document) Close() error {
	return d.doc.Close()
}
