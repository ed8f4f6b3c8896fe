package synth

import (
	"math/rand"

	"github.com/medsynth/symgen/pkg/types"
)

// systemicSymptoms are body-part-independent: their rendered text
// never references a body part. All other symptoms draw one.
var systemicSymptoms = map[string]struct{}{
	"fatigue": {},
}

// IsSystemic reports whether a symptom is body-part-independent.
func IsSystemic(symptom string) bool {
	_, ok := systemicSymptoms[symptom]
	return ok
}

// RecordGenerator composes the demographic sampler and the template
// synthesizer to produce labeled symptom records. The vocabulary is
// referenced read-only and never mutated.
type RecordGenerator struct {
	vocab     types.Vocabulary
	sampler   *Sampler
	templates *TemplateSynthesizer
	rng       *rand.Rand
}

// NewRecordGenerator creates a generator over the given vocabulary.
// All sampling draws from the single supplied random source, so a
// seeded source produces a deterministic record sequence.
func NewRecordGenerator(vocab types.Vocabulary, rng *rand.Rand) *RecordGenerator {
	return &RecordGenerator{
		vocab:     vocab,
		sampler:   NewSampler(vocab, rng),
		templates: NewTemplateSynthesizer(rng),
		rng:       rng,
	}
}

// GenerateOne synthesizes a single labeled record: a uniform symptom
// draw, a body-part draw unless the symptom is systemic, sampled
// metadata, and a rendered description.
func (g *RecordGenerator) GenerateOne() (types.SymptomRecord, error) {
	if len(g.vocab.Symptoms) == 0 {
		return types.SymptomRecord{}, types.NewConfigError("symptom list is empty")
	}
	if len(g.vocab.BodyParts) == 0 {
		return types.SymptomRecord{}, types.NewConfigError("body-part list is empty")
	}

	symptom := g.vocab.Symptoms[g.rng.Intn(len(g.vocab.Symptoms))]

	var bodyPart string
	if !IsSystemic(symptom) {
		bodyPart = g.vocab.BodyParts[g.rng.Intn(len(g.vocab.BodyParts))]
	}

	md, err := g.sampler.SampleMetadata()
	if err != nil {
		return types.SymptomRecord{}, err
	}

	text, err := g.templates.Render(symptom, bodyPart, md)
	if err != nil {
		return types.SymptomRecord{}, err
	}

	return types.SymptomRecord{Text: text, Label: symptom, Metadata: md}, nil
}

// GenerateMany produces n independent records in generation order.
// The order carries no semantic meaning. n = 0 returns an empty slice.
func (g *RecordGenerator) GenerateMany(n int) ([]types.SymptomRecord, error) {
	records := make([]types.SymptomRecord, 0, n)
	for i := 0; i < n; i++ {
		rec, err := g.GenerateOne()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
