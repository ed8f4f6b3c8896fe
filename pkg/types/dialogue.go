package types

// DialogueSample is one oracle-generated patient dialogue. Text is the
// oracle output with the echoed prompt prefix removed and surrounding
// whitespace trimmed. The sampled symptom subset is kept as the label
// set so dialogue samples stay usable as training data alongside
// template-generated records.
type DialogueSample struct {
	Text           string   `json:"text"`
	Symptoms       []string `json:"symptoms"` // Drawn subset, in drawn order
	Register       string   `json:"register"`
	Tone           string   `json:"tone"`
	SpellingErrors bool     `json:"spelling_errors"`
}
