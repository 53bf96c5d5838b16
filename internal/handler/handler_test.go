package handler_test

import (
	"bytes"
	"fmt"
	"image"
	"mime/multipart"
	"net/textproto"
	"testing"

	webp "github.com/chai2010/webp"

	"webpmill/internal/backend"
	"webpmill/internal/config"
	"webpmill/internal/handler"
	"webpmill/internal/metrics"
	"webpmill/internal/pipeline"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerAddr:      ":0",
		BackendURL:      "http://127.0.0.1:1",
		MaxDimension:    1600,
		WebPQuality:     80,
		RasterScale:     2.0,
		MaxFileBytes:    25 << 20,
		MaxRequestBytes: 100 << 20,
	}
}

func newTestHandler(t *testing.T, rast pipeline.Rasterizer, backendURL string) *handler.Handler {
	t.Helper()
	cfg := testConfig()
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	orch := pipeline.New(pipeline.WebPCodec{}, rast, pipeline.Options{
		MaxDimension: cfg.MaxDimension,
		Quality:      cfg.WebPQuality,
		RasterScale:  cfg.RasterScale,
	})
	return handler.New(orch, backend.New(cfg.BackendURL), metrics.New(), cfg)
}

type uploadFile struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

// multipartBody builds a multipart request body with explicit per-part
// content types, which CreateFormFile alone cannot set.
func multipartBody(t *testing.T, files []uploadFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		hdr.Set("Content-Type", f.contentType)
		w, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := w.Write(f.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func decodeWebP(t *testing.T, data []byte) (image.Image, error) {
	t.Helper()
	return webp.Decode(bytes.NewReader(data))
}

// stubRasterizer fakes a PDF document for handler tests.
type stubRasterizer struct {
	pages    int
	failPage int
	openErr  error
}

func (s *stubRasterizer) Open(pdf []byte) (pipeline.Document, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &stubDocument{s: s}, nil
}

type stubDocument struct {
	s *stubRasterizer
}

func (d *stubDocument) PageCount() int { return d.s.pages }

func (d *stubDocument) RenderPage(page int, scale float64) (image.Image, error) {
	if d.s.failPage != 0 && page == d.s.failPage {
		return nil, fmt.Errorf("synthetic failure on page %d", page)
	}
	return image.NewRGBA(image.Rect(0, 0, 32, 32)), nil
}

func (d *stubDocument) Close() error { return nil }
