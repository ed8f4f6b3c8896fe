package synth_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsynth/symgen/internal/synth"
	"github.com/medsynth/symgen/pkg/types"
)

var testMetadata = types.Metadata{
	Age:      "30-40",
	Gender:   "female",
	Severity: types.SeverityModerate,
	Duration: "4 weeks",
}

func TestRender_LocalizedMentionsBodyPartAndDuration(t *testing.T) {
	ts := synth.NewTemplateSynthesizer(rand.New(rand.NewSource(1)))

	for i := 0; i < 40; i++ {
		text, err := ts.Render("pain", "chest", testMetadata)
		require.NoError(t, err)
		assert.Contains(t, text, "pain")
		assert.Contains(t, text, "chest")
		assert.Contains(t, text, "4 weeks")
	}
}

func TestRender_SystemicUsesFixedShape(t *testing.T) {
	ts := synth.NewTemplateSynthesizer(rand.New(rand.NewSource(2)))

	// The systemic form is a single fixed template, so repeated calls
	// render identically.
	first, err := ts.Render("fatigue", "", testMetadata)
	require.NoError(t, err)
	assert.Equal(t, "I have been feeling fatigue for 4 weeks. It's moderate.", first)

	for i := 0; i < 10; i++ {
		text, err := ts.Render("fatigue", "", testMetadata)
		require.NoError(t, err)
		assert.Equal(t, first, text)
	}
}

func TestRender_EmptySymptom(t *testing.T) {
	ts := synth.NewTemplateSynthesizer(rand.New(rand.NewSource(3)))

	_, err := ts.Render("", "chest", testMetadata)
	var valErr *types.ValueError
	assert.True(t, errors.As(err, &valErr), "expected ValueError, got %v", err)
}

func TestSampleMetadata_EmptyAges(t *testing.T) {
	vocab := types.DefaultVocabulary()
	vocab.Ages = nil
	s := synth.NewSampler(vocab, rand.New(rand.NewSource(4)))

	_, err := s.SampleMetadata()
	var cfgErr *types.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
}

func TestSampleMetadata_EmptyGenders(t *testing.T) {
	vocab := types.DefaultVocabulary()
	vocab.Genders = nil
	s := synth.NewSampler(vocab, rand.New(rand.NewSource(5)))

	_, err := s.SampleMetadata()
	var cfgErr *types.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
}
