package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	webp "github.com/chai2010/webp"
)

// DetectFormat reads up to 512 bytes from r and returns the detected MIME type.
// Note: this will consume from r.
func DetectFormat(r io.Reader) (string, error) {
	buf := make([]byte, 512)
	n, err := io.ReadAtLeast(r, buf, 1)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// Decode turns raw input bytes into a pixel surface. mediaType is the
// declared type; when empty the type is sniffed from the bytes. Only JPEG,
// PNG and WebP inputs are accepted.
func Decode(data []byte, mediaType string) (image.Image, error) {
	ct := mediaType
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	var img image.Image
	var decodeErr error

	switch {
	case strings.HasPrefix(ct, "image/jpeg"):
		img, decodeErr = jpeg.Decode(bytes.NewReader(data))
	case strings.HasPrefix(ct, "image/png"):
		img, decodeErr = png.Decode(bytes.NewReader(data))
	case strings.HasPrefix(ct, "image/webp"):
		img, decodeErr = webp.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ct)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode %s: %w", ct, decodeErr)
	}

	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSurface
	}
	if w > MaxDecodeDimension || h > MaxDecodeDimension {
		return nil, fmt.Errorf("image %dx%d exceeds %d pixel limit", w, h, MaxDecodeDimension)
	}

	return img, nil
}

// WebPCodec is the production Codec backed by the platform decoders and the
// libwebp encoder.
type WebPCodec struct{}

func (WebPCodec) Decode(data []byte, mediaType string) (image.Image, error) {
	return Decode(data, mediaType)
}

func (WebPCodec) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeWebP(img, &buf, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
