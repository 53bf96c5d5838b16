package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"webpmill/internal/backend"
	"webpmill/internal/config"
	"webpmill/internal/handler"
	"webpmill/internal/metrics"
	"webpmill/internal/pipeline"
	"webpmill/internal/rasterize"
)

func main() {
	cfg := config.Load()

	orch := pipeline.New(pipeline.WebPCodec{}, rasterize.New(), pipeline.Options{
		MaxDimension: cfg.MaxDimension,
		Quality:      cfg.WebPQuality,
		RasterScale:  cfg.RasterScale,
	})

	h := handler.New(orch, backend.New(cfg.BackendURL), metrics.New(), cfg)

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("webpmill listening on %s (backend: %s)", cfg.ServerAddr, cfg.BackendURL)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
