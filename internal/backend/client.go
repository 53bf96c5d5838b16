// Package backend is the HTTP client for the external PDF embedded-image
// extraction service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ExtractedImage is one embedded image as reported by the service.
type ExtractedImage struct {
	PageNumber int    `json:"pageNumber"`
	ImageIndex int    `json:"imageIndex,omitempty"`
	URL        string `json:"url"`
}

// ExtractResponse is the service's success payload.
type ExtractResponse struct {
	Success     bool             `json:"success"`
	Images      []ExtractedImage `json:"images"`
	TotalImages int              `json:"totalImages"`
}

type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 2 * time.Minute},
	}
}

// ExtractImages uploads pdf as the multipart "file" field and returns the
// upstream status code and raw body. The body is passed through untouched so
// the proxy layer can relay success responses verbatim.
func (c *Client) ExtractImages(ctx context.Context, filename string, pdf []byte) (int, []byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return 0, nil, fmt.Errorf("build multipart: %w", err)
	}
	if _, err := fw.Write(pdf); err != nil {
		return 0, nil, fmt.Errorf("build multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return 0, nil, fmt.Errorf("build multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/extract-images", &body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("extraction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read extraction response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// Health checks the service's /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("extraction service unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("extraction service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// ErrorDetail pulls a human-readable message out of an upstream error body.
// The service reports failures as {"detail": "..."}.
func ErrorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "PDF extraction failed"
}
