package handler_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webpmill/internal/datauri"
)

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handlerFunc(w, req)
	return w
}

func archivePayload() map[string]any {
	return map[string]any{
		"images": []map[string]string{
			{"name": "1.webp", "url": datauri.Encode("image/webp", []byte("payload-one"))},
			{"name": "2.webp", "url": datauri.Encode("image/webp", []byte("payload-two"))},
		},
	}
}

func TestArchiveImages_ZipRoundTrip(t *testing.T) {
	h := newTestHandler(t, nil, "")
	w := postJSON(t, h.ArchiveImages, "/api/images/archive", archivePayload())

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("expected application/zip, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "images-webp.zip") {
		t.Fatalf("expected images-webp.zip download, got %s", cd)
	}

	blob := w.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zr.File))
	}
	want := map[string]string{"1.webp": "payload-one", "2.webp": "payload-two"}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry: %v", err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		if string(data) != want[f.Name] {
			t.Fatalf("entry %s: expected %q, got %q", f.Name, want[f.Name], data)
		}
	}
}

func TestArchivePDFImages_Filename(t *testing.T) {
	h := newTestHandler(t, nil, "")
	w := postJSON(t, h.ArchivePDFImages, "/api/pdf/archive", archivePayload())

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "extracted-pdf-images.zip") {
		t.Fatalf("expected extracted-pdf-images.zip download, got %s", cd)
	}
}

func TestArchiveImages_EmptyRequest(t *testing.T) {
	h := newTestHandler(t, nil, "")
	w := postJSON(t, h.ArchiveImages, "/api/images/archive", map[string]any{"images": []any{}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestArchiveImages_InvalidDataURI(t *testing.T) {
	h := newTestHandler(t, nil, "")
	w := postJSON(t, h.ArchiveImages, "/api/images/archive", map[string]any{
		"images": []map[string]string{
			{"name": "1.webp", "url": "data:image/webp,no-base64-marker"},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDownloadImage_RawPayload(t *testing.T) {
	h := newTestHandler(t, nil, "")
	w := postJSON(t, h.DownloadImage, "/api/images/download", map[string]string{
		"name": "2.webp",
		"url":  datauri.Encode("image/webp", []byte("raw-bytes")),
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/webp" {
		t.Fatalf("expected image/webp, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "2.webp") {
		t.Fatalf("expected filename in disposition, got %s", cd)
	}
	if w.Body.String() != "raw-bytes" {
		t.Fatalf("expected raw payload, got %q", w.Body.String())
	}
}
