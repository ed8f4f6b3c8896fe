// Package llm provides clients for the text-generation oracle backing
// the dialogue synthesizer. All providers are normalized to one
// contract: Complete returns a causal continuation of the prompt, i.e.
// text that begins with the verbatim prompt followed by the generated
// continuation. No guarantee is made about the semantic content of the
// continuation.
package llm

import "context"

// Options are the decoding parameters sent with every completion.
// Zero-valued fields are replaced by the stated defaults.
type Options struct {
	MaxLength         int     // Maximum generated length (default: 500)
	Temperature       float64 // Sampling temperature in (0,2] (default: 0.6)
	TopP              float64 // Nucleus-sampling threshold in (0,1] (default: 0.9)
	RepetitionPenalty float64 // Repetition penalty >= 1 (default: 1.2)
}

// DefaultOptions returns the default decoding configuration.
func DefaultOptions() Options {
	return Options{
		MaxLength:         500,
		Temperature:       0.6,
		TopP:              0.9,
		RepetitionPenalty: 1.2,
	}
}

// WithDefaults fills zero-valued fields with their defaults.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()
	if o.MaxLength == 0 {
		o.MaxLength = def.MaxLength
	}
	if o.Temperature == 0 {
		o.Temperature = def.Temperature
	}
	if o.TopP == 0 {
		o.TopP = def.TopP
	}
	if o.RepetitionPenalty == 0 {
		o.RepetitionPenalty = def.RepetitionPenalty
	}
	return o
}

// TextGenerator is the interface for the text-generation oracle.
// Complete blocks until the full output is available; no streaming.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
	Model() string
}

// EmbeddingGenerator is the interface for generating vector embeddings
// of record text. Used by the Postgres dataset store for similarity
// search over synthetic samples.
type EmbeddingGenerator interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}
