// Package types defines the shared data model for synthesized symptom
// records and oracle-generated patient dialogues.
package types

// Severity levels attached to generated records. The set is fixed and
// not caller-configurable.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Severities lists all valid severity values in a stable order.
var Severities = []string{SeverityMild, SeverityModerate, SeveritySevere}

// Duration bounds for generated records, in weeks (inclusive).
const (
	MinDurationWeeks = 1
	MaxDurationWeeks = 12
)

// Metadata holds the structured demographic and clinical attributes
// attached to a synthesized record.
type Metadata struct {
	Age      string `json:"age"`      // One of the configured age brackets
	Gender   string `json:"gender"`   // One of the configured gender values
	Severity string `json:"severity"` // mild, moderate or severe
	Duration string `json:"duration"` // "<k> weeks" with k in [1,12]
}

// SymptomRecord is one synthesized labeled example. Records are
// immutable once built and carry no identity beyond their contents;
// the dataset stores assign IDs at insert time.
type SymptomRecord struct {
	Text     string   `json:"text"`     // Rendered natural-language description
	Label    string   `json:"label"`    // Symptom name, drawn from the vocabulary
	Metadata Metadata `json:"metadata"` // Demographic/clinical attributes
}

// Vocabulary is the fixed word lists and demographic value sets
// governing record synthesis. It is supplied once by the caller and
// shared read-only across all generations; no component mutates it.
type Vocabulary struct {
	Symptoms  []string `yaml:"symptoms" json:"symptoms"`
	BodyParts []string `yaml:"body_parts" json:"body_parts"`
	Ages      []string `yaml:"ages" json:"ages"`
	Genders   []string `yaml:"genders" json:"genders"`
}

// DefaultVocabulary returns the built-in generation vocabulary used
// when no vocabulary file is configured.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Symptoms:  []string{"fatigue", "pain", "lump", "fever", "weight loss"},
		BodyParts: []string{"neck", "chest", "abdomen", "back", "arm"},
		Ages:      []string{"20-30", "30-40", "40-50", "50-60", "60-70", "70+"},
		Genders:   []string{"male", "female", "non-binary"},
	}
}
