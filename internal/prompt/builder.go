// Package prompt builds the patient-dialogue instruction sent to the
// text-generation oracle. Prompt construction is pure: the output is a
// deterministic function of the symptom subset and the style controls.
package prompt

import (
	"fmt"
	"strings"

	"github.com/medsynth/symgen/pkg/types"
)

// Style bundles the stylistic controls for a dialogue prompt.
type Style struct {
	Register       string // Language register, e.g. "familiar", "standard"
	Tone           string // Patient tone, e.g. "neutral", "anxious"
	SpellingErrors bool   // Instruct the model to include spelling errors
}

const spellingErrorClause = " Include spelling errors in your answer."

// Build renders the instruction string: the patient role, the joined
// symptom list, the register and tone, and the spelling-error clause
// when requested.
func Build(symptoms []string, style Style) (string, error) {
	if len(symptoms) == 0 {
		return "", types.NewValueError("symptom list is empty")
	}

	var b strings.Builder
	b.WriteString("You are a sick patient describing your symptoms to a doctor. ")
	fmt.Fprintf(&b, "The symptoms you describe and suffer from are: %s. ", strings.Join(symptoms, ", "))
	fmt.Fprintf(&b, "The language register you adopt in your description is: %s. ", style.Register)
	fmt.Fprintf(&b, "The tone you take is: %s.", style.Tone)
	if style.SpellingErrors {
		b.WriteString(spellingErrorClause)
	}
	return b.String(), nil
}
