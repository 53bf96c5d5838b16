package handler

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", h.Stats)

		// Conversion endpoints share one rate limit.
		r.Group(func(r chi.Router) {
			if h.limiter != nil {
				r.Use(h.limiter.Middleware())
			}

			r.Post("/images/convert", h.ConvertImages)
			r.Post("/images/archive", h.ArchiveImages)
			r.Post("/images/download", h.DownloadImage)

			r.Post("/pdf/render-pages", h.RenderPDFPages)
			r.Post("/pdf/extract-images", h.ExtractPDFImages)
			r.Post("/pdf/archive", h.ArchivePDFImages)
		})
	})
}
