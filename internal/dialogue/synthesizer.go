// Package dialogue turns a symptom pool and stylistic controls into an
// oracle-generated patient dialogue: sample a symptom subset, build
// the instruction prompt, invoke the text-generation oracle, and strip
// the echoed prompt from the output.
package dialogue

import (
	"context"
	"math/rand"
	"strings"

	"github.com/medsynth/symgen/internal/llm"
	"github.com/medsynth/symgen/internal/prompt"
	"github.com/medsynth/symgen/pkg/types"
)

// Request describes one dialogue generation.
type Request struct {
	Pool        []string     // Symptom pool to draw from; must be non-empty
	MaxSymptoms int          // Upper bound on the drawn subset size; must be positive
	Style       prompt.Style // Register, tone and spelling-error controls
	Options     llm.Options  // Decoding parameters; zero fields use the defaults
}

// Synthesizer generates patient dialogues through a text-generation
// oracle. The oracle call blocks until the full output is available.
type Synthesizer struct {
	oracle llm.TextGenerator
	rng    *rand.Rand
}

// NewSynthesizer creates a dialogue synthesizer. The random source
// drives symptom subset sampling; seed it for reproducible draws.
func NewSynthesizer(oracle llm.TextGenerator, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{oracle: oracle, rng: rng}
}

// Generate produces one dialogue sample. It draws
// min(MaxSymptoms, |Pool|) symptoms without replacement in randomized
// order, builds the prompt, invokes the oracle, and removes exactly
// the prompt-length prefix from the output before trimming whitespace.
func (s *Synthesizer) Generate(ctx context.Context, req Request) (types.DialogueSample, error) {
	if len(req.Pool) == 0 {
		return types.DialogueSample{}, types.NewValueError("symptom pool is empty")
	}
	if req.MaxSymptoms <= 0 {
		return types.DialogueSample{}, types.NewValueError("max symptoms must be positive, got %d", req.MaxSymptoms)
	}

	symptoms := s.sampleSymptoms(req.Pool, req.MaxSymptoms)

	p, err := prompt.Build(symptoms, req.Style)
	if err != nil {
		return types.DialogueSample{}, err
	}

	out, err := s.oracle.Complete(ctx, p, req.Options)
	if err != nil {
		return types.DialogueSample{}, &types.OracleError{Reason: "completion failed", Err: err}
	}

	// The oracle contract guarantees the output begins with the
	// verbatim prompt; strip exactly that prefix, by length.
	if len(out) < len(p) {
		return types.DialogueSample{}, &types.OracleError{
			Reason: "output shorter than prompt, continuation contract violated",
		}
	}

	return types.DialogueSample{
		Text:           strings.TrimSpace(out[len(p):]),
		Symptoms:       symptoms,
		Register:       req.Style.Register,
		Tone:           req.Style.Tone,
		SpellingErrors: req.Style.SpellingErrors,
	}, nil
}

// GenerateBatch produces up to n dialogue samples. With skipFailures
// false the first per-item failure aborts the batch; with skipFailures
// true failed items are dropped, and an error is returned only when
// every item failed.
func (s *Synthesizer) GenerateBatch(ctx context.Context, req Request, n int, skipFailures bool) ([]types.DialogueSample, error) {
	samples := make([]types.DialogueSample, 0, n)
	var lastErr error

	for i := 0; i < n; i++ {
		sample, err := s.Generate(ctx, req)
		if err != nil {
			if !skipFailures {
				return samples, err
			}
			lastErr = err
			continue
		}
		samples = append(samples, sample)
	}

	if len(samples) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return samples, nil
}

// sampleSymptoms draws k = min(limit, |pool|) symptoms without
// replacement, in randomized order.
func (s *Synthesizer) sampleSymptoms(pool []string, limit int) []string {
	k := limit
	if k > len(pool) {
		k = len(pool)
	}
	drawn := make([]string, 0, k)
	for _, idx := range s.rng.Perm(len(pool))[:k] {
		drawn = append(drawn, pool[idx])
	}
	return drawn
}
