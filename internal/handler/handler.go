package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"webpmill/internal/backend"
	"webpmill/internal/config"
	"webpmill/internal/metrics"
	"webpmill/internal/middleware"
	"webpmill/internal/pipeline"
)

type Handler struct {
	orch    *pipeline.Orchestrator
	backend *backend.Client
	metrics *metrics.Recorder
	limiter *middleware.RateLimiter
	cfg     *config.Config
}

func New(orch *pipeline.Orchestrator, client *backend.Client, recorder *metrics.Recorder, cfg *config.Config) *Handler {
	h := &Handler{
		orch:    orch,
		backend: client,
		metrics: recorder,
		cfg:     cfg,
	}

	if cfg != nil && cfg.RateLimitPerMin > 0 {
		proxies, err := middleware.ParseTrustedProxyCIDRs(cfg.TrustedProxyCIDRs)
		if err != nil {
			log.Fatalf("trusted proxy configuration error: %v", err)
		}
		h.limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimitPerMin,
			TrustedProxies:    proxies,
		})
	}

	return h
}

// ConvertedImage is one pipeline output in API responses.
type ConvertedImage struct {
	Name              string `json:"name"`
	URL               string `json:"url"`
	OriginalSizeBytes int    `json:"originalSizeBytes"`
	EncodedSizeBytes  int    `json:"encodedSizeBytes"`
	PageNumber        int    `json:"pageNumber,omitempty"`
	ImageIndex        int    `json:"imageIndex,omitempty"`
}

// ConvertResponse mirrors the extraction service's success payload shape.
type ConvertResponse struct {
	Success     bool             `json:"success"`
	Images      []ConvertedImage `json:"images"`
	TotalImages int              `json:"totalImages"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handler: write json response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
