package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"webpmill/internal/archive"
	"webpmill/internal/datauri"
	"webpmill/internal/metrics"
	"webpmill/internal/pipeline"
)

// ArchiveRequest carries the outputs the client wants bundled. Each URL is a
// data:image/webp;base64 URI produced by a previous conversion call.
type ArchiveRequest struct {
	Images []ArchiveItem `json:"images"`
}

type ArchiveItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ArchiveImages bundles an image-batch result into images-webp.zip.
func (h *Handler) ArchiveImages(w http.ResponseWriter, r *http.Request) {
	h.serveArchive(w, r, "images-webp.zip")
}

// ArchivePDFImages bundles a PDF result into extracted-pdf-images.zip.
func (h *Handler) ArchivePDFImages(w http.ResponseWriter, r *http.Request) {
	h.serveArchive(w, r, "extracted-pdf-images.zip")
}

func (h *Handler) serveArchive(w http.ResponseWriter, r *http.Request, filename string) {
	items, ok := decodeArchiveRequest(w, r)
	if !ok {
		return
	}

	blob, err := archive.Build(items)
	if err != nil {
		log.Printf("archive: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to build archive")
		return
	}

	h.metrics.RecordEvent(metrics.EventArchive)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(blob)))
	if _, err := w.Write(blob); err != nil {
		log.Printf("archive: write response: %v", err)
	}
}

// DownloadImage returns a single output's raw WebP payload.
func (h *Handler) DownloadImage(w http.ResponseWriter, r *http.Request) {
	var item ArchiveItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	out, ok := outputFromItem(w, item)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Name))
	if _, err := w.Write(archive.BuildSingle(out)); err != nil {
		log.Printf("download: write response: %v", err)
	}
}

func decodeArchiveRequest(w http.ResponseWriter, r *http.Request) ([]pipeline.OutputItem, bool) {
	var req ArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if len(req.Images) == 0 {
		writeError(w, http.StatusBadRequest, "No images to archive")
		return nil, false
	}

	items := make([]pipeline.OutputItem, 0, len(req.Images))
	for _, img := range req.Images {
		out, ok := outputFromItem(w, img)
		if !ok {
			return nil, false
		}
		items = append(items, out)
	}
	return items, true
}

func outputFromItem(w http.ResponseWriter, item ArchiveItem) (pipeline.OutputItem, bool) {
	if item.Name == "" {
		writeError(w, http.StatusBadRequest, "Image entry is missing a name")
		return pipeline.OutputItem{}, false
	}
	_, data, err := datauri.Decode(item.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid data URI for %s", item.Name))
		return pipeline.OutputItem{}, false
	}
	return pipeline.OutputItem{Name: item.Name, Data: data, EncodedSize: len(data)}, true
}
