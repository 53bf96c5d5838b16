package handler

import (
	"context"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Backend   string    `json:"backend"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthCheck reports liveness plus the reachability of the extraction
// service. An unreachable backend does not fail the check: conversion and
// rendering work without it.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Backend:   "ok",
		Timestamp: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.backend.Health(ctx); err != nil {
		resp.Backend = "unreachable"
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.metrics.Stats())
}
