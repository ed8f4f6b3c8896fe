package prompt_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsynth/symgen/internal/prompt"
	"github.com/medsynth/symgen/pkg/types"
)

func TestBuild_ContainsAllControls(t *testing.T) {
	got, err := prompt.Build([]string{"fever", "cough"}, prompt.Style{
		Register:       "familiar",
		Tone:           "anxious",
		SpellingErrors: true,
	})
	require.NoError(t, err)

	assert.Contains(t, got, "fever")
	assert.Contains(t, got, "cough")
	assert.Contains(t, got, "familiar")
	assert.Contains(t, got, "anxious")
	assert.Contains(t, got, "spelling errors")
}

func TestBuild_NoSpellingClauseByDefault(t *testing.T) {
	got, err := prompt.Build([]string{"fever"}, prompt.Style{Register: "standard", Tone: "neutral"})
	require.NoError(t, err)

	assert.NotContains(t, got, "spelling errors")
}

func TestBuild_IsPure(t *testing.T) {
	style := prompt.Style{Register: "standard", Tone: "angry", SpellingErrors: true}

	a, err := prompt.Build([]string{"headache", "nausea"}, style)
	require.NoError(t, err)
	b, err := prompt.Build([]string{"headache", "nausea"}, style)
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical arguments must yield identical prompts")
}

func TestBuild_EmptySymptoms(t *testing.T) {
	_, err := prompt.Build(nil, prompt.Style{Register: "standard", Tone: "neutral"})

	var valErr *types.ValueError
	assert.True(t, errors.As(err, &valErr), "expected ValueError, got %v", err)
}
