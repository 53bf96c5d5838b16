package handler

import (
	"log"
	"net/http"
	"path/filepath"

	"webpmill/internal/backend"
	"webpmill/internal/metrics"
)

// ExtractPDFImages forwards the uploaded PDF to the external embedded-image
// extraction service and relays its answer. Success bodies pass through
// verbatim; upstream failures keep their status code with the upstream
// detail; transport failures collapse to a generic 500.
func (h *Handler) ExtractPDFImages(w http.ResponseWriter, r *http.Request) {
	pdf, name, ok := h.readPDFUpload(w, r)
	if !ok {
		return
	}

	filename := "upload.pdf"
	if base := filepath.Base(name); base != "." && base != "/" && base != "" {
		filename = base
	}

	status, body, err := h.backend.ExtractImages(r.Context(), filename, pdf)
	if err != nil {
		log.Printf("extract: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to extract images from PDF")
		return
	}

	if status < 200 || status >= 300 {
		writeError(w, status, backend.ErrorDetail(body))
		return
	}

	h.metrics.RecordEvent(metrics.EventExtract)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("extract: relay response: %v", err)
	}
}
