// Package synth implements the template-driven symptom record
// synthesizer: demographic sampling, sentence templating, and record
// assembly. All randomness flows through an explicit *rand.Rand so a
// seeded source yields a deterministic record sequence.
package synth

import (
	"fmt"
	"math/rand"

	"github.com/medsynth/symgen/pkg/types"
)

// Sampler draws structured demographic metadata from the configured
// vocabulary value sets.
type Sampler struct {
	vocab types.Vocabulary
	rng   *rand.Rand
}

// NewSampler creates a sampler over the given vocabulary. The random
// source is required; callers seed it for reproducible output.
func NewSampler(vocab types.Vocabulary, rng *rand.Rand) *Sampler {
	return &Sampler{vocab: vocab, rng: rng}
}

// SampleMetadata draws one metadata set: age and gender uniformly from
// their configured sets, severity uniformly from the fixed three-value
// set, and duration as "<k> weeks" with k uniform in [1,12].
func (s *Sampler) SampleMetadata() (types.Metadata, error) {
	if len(s.vocab.Ages) == 0 {
		return types.Metadata{}, types.NewConfigError("age set is empty")
	}
	if len(s.vocab.Genders) == 0 {
		return types.Metadata{}, types.NewConfigError("gender set is empty")
	}

	weeks := types.MinDurationWeeks + s.rng.Intn(types.MaxDurationWeeks-types.MinDurationWeeks+1)

	return types.Metadata{
		Age:      s.vocab.Ages[s.rng.Intn(len(s.vocab.Ages))],
		Gender:   s.vocab.Genders[s.rng.Intn(len(s.vocab.Genders))],
		Severity: types.Severities[s.rng.Intn(len(types.Severities))],
		Duration: fmt.Sprintf("%d weeks", weeks),
	}, nil
}
