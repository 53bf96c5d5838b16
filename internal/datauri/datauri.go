// Package datauri encodes and parses data: URIs used to ship binary payloads
// inline in JSON responses.
package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid data URI")

// Encode builds a data:<mime>;base64,<payload> URI.
func Encode(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode splits a data URI on the first comma, validates the ;base64 marker
// in the header and decodes the remainder.
func Decode(uri string) (mime string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURI)
	}
	header, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: no comma separator", ErrInvalidDataURI)
	}
	if !strings.Contains(header, ";base64") {
		return "", nil, fmt.Errorf("%w: missing ;base64 marker", ErrInvalidDataURI)
	}

	mime = strings.TrimPrefix(header, "data:")
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return mime, data, nil
}
