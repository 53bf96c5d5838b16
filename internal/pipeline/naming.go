package pipeline

import "fmt"

// Sequencer owns the running counter for image-batch output names. The
// counter advances once per attempted input, whether or not that input
// produces an output, so names always reflect the original upload order.
type Sequencer struct {
	n int
}

// Next claims the next slot and returns its output name ("1.webp", ...).
func (s *Sequencer) Next() string {
	s.n++
	return fmt.Sprintf("%d.webp", s.n)
}

// PageImageName names a PDF-derived output. imageIndex is 1-based within the
// page; page rendering produces a single raster per page, so callers pass 1.
func PageImageName(page, imageIndex int) string {
	return fmt.Sprintf("page-%d-image-%d.webp", page, imageIndex)
}
