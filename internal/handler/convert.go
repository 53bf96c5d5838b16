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

// ConvertImages handles multipart image batches: each file in the "images"
// field is decoded, downscaled and re-encoded to WebP. Failed files are
// skipped; if nothing converts at all the client gets a distinct
// "no supported files" answer instead of a generic error.
func (h *Handler) ConvertImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxRequestBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	items := make([]pipeline.InputItem, 0, len(files))
	var bytesIn int64
	for _, hdr := range files {
		f, err := hdr.Open()
		if err != nil {
			log.Printf("convert: open %q: %v", hdr.Filename, err)
			// keep the slot: an unreadable part is an attempted input
			items = append(items, pipeline.InputItem{Name: hdr.Filename})
			continue
		}
		data, err := io.ReadAll(io.LimitReader(f, h.cfg.MaxFileBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > h.cfg.MaxFileBytes {
			log.Printf("convert: read %q failed or too large", hdr.Filename)
			items = append(items, pipeline.InputItem{Name: hdr.Filename})
			continue
		}
		bytesIn += int64(len(data))
		items = append(items, pipeline.InputItem{
			Name:      hdr.Filename,
			MediaType: hdr.Header.Get("Content-Type"),
			Data:      data,
		})
	}

	outputs, err := h.orch.Run(items)
	if err != nil {
		if errors.Is(err, pipeline.ErrNothingProcessed) {
			writeError(w, http.StatusUnprocessableEntity, "No supported files found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to convert images")
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
		})
	}

	h.metrics.RecordBatch(metrics.EventConvert, len(items), len(outputs), bytesIn, bytesOut)

	writeJSON(w, http.StatusOK, ConvertResponse{
		Success:     true,
		Images:      images,
		TotalImages: len(images),
	})
}
