package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"webpmill/internal/datauri"
	"webpmill/internal/metrics"
	"webpmill/internal/pipeline"
)

// RenderPDFPages rasterizes every page of an uploaded PDF at the configured
// scale and returns one WebP per page. A failure on any page fails the whole
// request: a partially rendered document is not presented as a result.
func (h *Handler) RenderPDFPages(w http.ResponseWriter, r *http.Request) {
	pdf, _, ok := h.readPDFUpload(w, r)
	if !ok {
		return
	}

	outputs, err := h.orch.RunDocument(pdf)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnsupportedDocument) {
			writeError(w, http.StatusBadRequest, "File is not a readable PDF")
			return
		}
		log.Printf("render: %v", err)
		writeError(w, http.StatusUnprocessableEntity, "Failed to render PDF pages")
		return
	}

	var bytesOut int64
	images := make([]ConvertedImage, 0, len(outputs))
	for _, out := range outputs {
		bytesOut += int64(out.EncodedSize)
		images = append(images, ConvertedImage{
			Name:              out.Name,
			URL:               datauri.Encode("image/webp", out.Data),
			OriginalSizeBytes: out.OriginalSize,
			EncodedSizeBytes:  out.EncodedSize,
			PageNumber:        out.PageNumber,
			ImageIndex:        out.ImageIndex,
		})
	}

	h.metrics.RecordBatch(metrics.EventRender, len(outputs), len(outputs), int64(len(pdf)), bytesOut)

	writeJSON(w, http.StatusOK, ConvertResponse{
		Success:     true,
		Images:      images,
		TotalImages: len(images),
	})
}

// readPDFUpload pulls the "file" part out of a multipart request and checks
// its declared media type. Writes the error response itself on failure.
func (h *Handler) readPDFUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxRequestBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read multipart form")
		return nil, "", false
	}
	defer r.MultipartForm.RemoveAll()

	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return nil, "", false
	}
	defer f.Close()

	if hdr.Header.Get("Content-Type") != "application/pdf" {
		writeError(w, http.StatusBadRequest, "File must be a PDF")
		return nil, "", false
	}

	pdf, err := io.ReadAll(io.LimitReader(f, h.cfg.MaxFileBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return nil, "", false
	}
	if int64(len(pdf)) > h.cfg.MaxFileBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		return nil, "", false
	}

	return pdf, hdr.Filename, true
}
