// Package archive bundles batch outputs into a single zip blob.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"webpmill/internal/pipeline"
)

// Build packages items into a zip, one entry per item, preserving batch
// order. Entry names come from the naming policy, which guarantees their
// uniqueness; duplicates here are a caller bug. The input slice is not
// touched, so a failed build can simply be retried.
func Build(items []pipeline.OutputItem) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, item := range items {
		w, err := zw.Create(item.Name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("archive build: create entry %s: %w", item.Name, err)
		}
		if _, err := w.Write(item.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("archive build: write entry %s: %w", item.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("archive build: finalize: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildSingle returns one item's payload unchanged, for per-item download.
func BuildSingle(item pipeline.OutputItem) []byte {
	return item.Data
}
