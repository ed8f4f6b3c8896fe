package synth

import (
	"fmt"
	"math/rand"

	"github.com/medsynth/symgen/pkg/types"
)

// localizedTemplates are the candidate sentence shapes for symptoms
// tied to a body part. Each mentions the body part exactly once so the
// rendered text always carries a single locatable body-part token.
var localizedTemplates = []func(symptom, bodyPart string, md types.Metadata) string{
	func(symptom, bodyPart string, md types.Metadata) string {
		return fmt.Sprintf("I have been experiencing %s in my %s for %s. It's %s.",
			symptom, bodyPart, md.Duration, md.Severity)
	},
	func(symptom, bodyPart string, md types.Metadata) string {
		return fmt.Sprintf("My %s has been %s for %s. The doctor said it's %s.",
			bodyPart, symptom, md.Duration, md.Severity)
	},
	func(symptom, bodyPart string, md types.Metadata) string {
		return fmt.Sprintf("I feel %s in my %s almost every day for %s.",
			symptom, bodyPart, md.Duration)
	},
	func(symptom, bodyPart string, md types.Metadata) string {
		return fmt.Sprintf("For the past %s, I noticed %s in my %s. It's been %s.",
			md.Duration, symptom, bodyPart, md.Severity)
	},
}

// TemplateSynthesizer renders natural-language symptom descriptions
// from fixed sentence templates.
type TemplateSynthesizer struct {
	rng *rand.Rand
}

// NewTemplateSynthesizer creates a template synthesizer using the
// given random source for template selection.
func NewTemplateSynthesizer(rng *rand.Rand) *TemplateSynthesizer {
	return &TemplateSynthesizer{rng: rng}
}

// Render produces one sentence describing the symptom. An empty
// bodyPart marks a systemic symptom: the four localized templates are
// skipped and a fixed single-clause shape with no body-part reference
// is used instead. Localized symptoms must reference a body part,
// systemic ones must not.
func (t *TemplateSynthesizer) Render(symptom, bodyPart string, md types.Metadata) (string, error) {
	if symptom == "" {
		return "", types.NewValueError("symptom is empty")
	}

	if bodyPart == "" {
		return fmt.Sprintf("I have been feeling %s for %s. It's %s.",
			symptom, md.Duration, md.Severity), nil
	}

	tmpl := localizedTemplates[t.rng.Intn(len(localizedTemplates))]
	return tmpl(symptom, bodyPart, md), nil
}
