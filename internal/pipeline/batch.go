package pipeline

import (
	"log"
)

// Orchestrator runs the decode -> resize -> encode pipeline over a batch of
// inputs, strictly sequentially. Collaborators are injected so the policy
// logic can be exercised with deterministic fakes.
type Orchestrator struct {
	codec Codec
	rast  Rasterizer
	opts  Options
}

// New builds an Orchestrator. A nil codec falls back to the production
// WebPCodec; a nil rasterizer disables RunDocument.
func New(codec Codec, rast Rasterizer, opts Options) *Orchestrator {
	if codec == nil {
		codec = WebPCodec{}
	}
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = DefaultOptions().MaxDimension
	}
	if opts.Quality <= 0 {
		opts.Quality = DefaultWebPQuality
	}
	if opts.RasterScale <= 0 {
		opts.RasterScale = DefaultOptions().RasterScale
	}
	return &Orchestrator{codec: codec, rast: rast, opts: opts}
}

// Run processes items in input order. A failing item is skipped, its name
// slot stays consumed, and the batch continues; no placeholder is produced.
// If nothing at all converts, Run reports ErrNothingProcessed so callers can
// distinguish "no supported files" from a technical failure.
func (o *Orchestrator) Run(items []InputItem) ([]OutputItem, error) {
	outputs := make([]OutputItem, 0, len(items))
	var seq Sequencer

	for _, item := range items {
		name := seq.Next()

		out, err := o.processOne(item)
		if err != nil {
			log.Printf("batch: skipping %q: %v", item.Name, err)
			continue
		}

		out.Name = name
		outputs = append(outputs, out)
	}

	if len(outputs) == 0 {
		return nil, ErrNothingProcessed
	}
	return outputs, nil
}

func (o *Orchestrator) processOne(item InputItem) (OutputItem, error) {
	img, err := o.codec.Decode(item.Data, item.MediaType)
	if err != nil {
		return OutputItem{}, err
	}

	img = ApplyEXIFOrientation(img, item.Data)
	img = Resize(img, o.opts.MaxDimension)

	encoded, err := o.codec.Encode(img, o.opts.Quality)
	if err != nil {
		return OutputItem{}, err
	}

	return OutputItem{
		Data:         encoded,
		OriginalSize: len(item.Data),
		EncodedSize:  len(encoded),
	}, nil
}
