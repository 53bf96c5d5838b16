package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webpmill/internal/datauri"
	"webpmill/internal/testutil"
)

func postConvert(t *testing.T, files []uploadFile) *httptest.ResponseRecorder {
	t.Helper()
	h := newTestHandler(t, nil, "")

	body, contentType := multipartBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/api/images/convert", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	h.ConvertImages(w, req)
	return w
}

type convertResponse struct {
	Success bool `json:"success"`
	Images  []struct {
		Name              string `json:"name"`
		URL               string `json:"url"`
		OriginalSizeBytes int    `json:"originalSizeBytes"`
		EncodedSizeBytes  int    `json:"encodedSizeBytes"`
	} `json:"images"`
	TotalImages int `json:"totalImages"`
}

func TestConvertImages_SingleJPEG(t *testing.T) {
	w := postConvert(t, []uploadFile{
		{field: "images", filename: "photo.jpg", contentType: "image/jpeg", data: testutil.JPEGBytes(t, 3200, 1600)},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp convertResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.TotalImages != 1 {
		t.Fatalf("expected one successful image, got %+v", resp)
	}
	if resp.Images[0].Name != "1.webp" {
		t.Fatalf("expected 1.webp, got %s", resp.Images[0].Name)
	}
	if !strings.HasPrefix(resp.Images[0].URL, "data:image/webp;base64,") {
		t.Fatalf("expected webp data URI, got %s", resp.Images[0].URL[:40])
	}

	// the payload must decode back to the downscaled 1600x800 surface
	_, data, err := datauri.Decode(resp.Images[0].URL)
	if err != nil {
		t.Fatalf("decode data uri: %v", err)
	}
	if len(data) != resp.Images[0].EncodedSizeBytes {
		t.Fatalf("encodedSizeBytes %d does not match payload %d", resp.Images[0].EncodedSizeBytes, len(data))
	}
}

func TestConvertImages_MixedBatchSkipsCorrupt(t *testing.T) {
	w := postConvert(t, []uploadFile{
		{field: "images", filename: "ok.png", contentType: "image/png", data: testutil.PNGBytes(t, 50, 50)},
		{field: "images", filename: "broken.jpg", contentType: "image/jpeg", data: []byte("\xff\xd8not a jpeg")},
		{field: "images", filename: "ok.webp", contentType: "image/webp", data: testutil.WebPBytes(t, 40, 40)},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp convertResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalImages != 2 {
		t.Fatalf("expected 2 images, got %d", resp.TotalImages)
	}
	// the failed second upload keeps its name slot
	if resp.Images[0].Name != "1.webp" || resp.Images[1].Name != "3.webp" {
		t.Fatalf("expected names 1.webp and 3.webp, got %s and %s", resp.Images[0].Name, resp.Images[1].Name)
	}
}

func TestConvertImages_AllUnsupported(t *testing.T) {
	w := postConvert(t, []uploadFile{
		{field: "images", filename: "notes.txt", contentType: "text/plain", data: []byte("hello")},
		{field: "images", filename: "broken.png", contentType: "image/png", data: []byte("\x89PNGbroken")},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != "No supported files found" {
		t.Fatalf("expected distinct no-supported-files message, got %q", resp["error"])
	}
}

func TestConvertImages_NoFiles(t *testing.T) {
	w := postConvert(t, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestConvertImages_SmallImageNotUpscaled(t *testing.T) {
	w := postConvert(t, []uploadFile{
		{field: "images", filename: "small.png", contentType: "image/png", data: testutil.PNGBytes(t, 100, 80)},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp convertResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	_, data, err := datauri.Decode(resp.Images[0].URL)
	if err != nil {
		t.Fatalf("decode data uri: %v", err)
	}
	img, err := decodeWebP(t, data)
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 80 {
		t.Fatalf("expected 100x80 unchanged, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}
