package synth_test

import (
	"errors"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsynth/symgen/internal/synth"
	"github.com/medsynth/symgen/pkg/types"
)

var durationPattern = regexp.MustCompile(`^(\d+) weeks$`)

func newTestGenerator(t *testing.T, vocab types.Vocabulary, seed int64) *synth.RecordGenerator {
	t.Helper()
	return synth.NewRecordGenerator(vocab, rand.New(rand.NewSource(seed)))
}

func TestGenerateOne_RecordInvariants(t *testing.T) {
	vocab := types.DefaultVocabulary()
	gen := newTestGenerator(t, vocab, 1)

	for i := 0; i < 200; i++ {
		rec, err := gen.GenerateOne()
		require.NoError(t, err)

		assert.Contains(t, vocab.Symptoms, rec.Label)
		assert.Contains(t, types.Severities, rec.Metadata.Severity)
		assert.Contains(t, vocab.Ages, rec.Metadata.Age)
		assert.Contains(t, vocab.Genders, rec.Metadata.Gender)

		m := durationPattern.FindStringSubmatch(rec.Metadata.Duration)
		require.NotNil(t, m, "duration %q must match '<k> weeks'", rec.Metadata.Duration)
		k, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, k, 1)
		assert.LessOrEqual(t, k, 12)
	}
}

// TestGenerateOne_BodyPartRule pins the systemic/localized split:
// fatigue text never mentions a body part, every other label mentions
// exactly one.
func TestGenerateOne_BodyPartRule(t *testing.T) {
	vocab := types.DefaultVocabulary()
	gen := newTestGenerator(t, vocab, 2)

	for i := 0; i < 300; i++ {
		rec, err := gen.GenerateOne()
		require.NoError(t, err)

		mentions := 0
		for _, part := range vocab.BodyParts {
			mentions += strings.Count(rec.Text, part)
		}

		if rec.Label == "fatigue" {
			assert.Zero(t, mentions, "systemic record %q must not mention a body part", rec.Text)
		} else {
			assert.Equal(t, 1, mentions, "localized record %q must mention exactly one body part", rec.Text)
		}
	}
}

// Two symptoms, one body part, single-value demographics: pain records
// must always mention "neck", fatigue records never.
func TestGenerateOne_MinimalVocabulary(t *testing.T) {
	vocab := types.Vocabulary{
		Symptoms:  []string{"fatigue", "pain"},
		BodyParts: []string{"neck"},
		Ages:      []string{"20-30"},
		Genders:   []string{"male"},
	}
	gen := newTestGenerator(t, vocab, 3)

	for i := 0; i < 50; i++ {
		rec, err := gen.GenerateOne()
		require.NoError(t, err)

		switch rec.Label {
		case "fatigue":
			assert.NotContains(t, rec.Text, "neck")
		case "pain":
			assert.Contains(t, rec.Text, "neck")
		default:
			t.Fatalf("unexpected label %q", rec.Label)
		}
		assert.Equal(t, "20-30", rec.Metadata.Age)
		assert.Equal(t, "male", rec.Metadata.Gender)
	}
}

func TestGenerateMany_Count(t *testing.T) {
	gen := newTestGenerator(t, types.DefaultVocabulary(), 4)

	records, err := gen.GenerateMany(17)
	require.NoError(t, err)
	assert.Len(t, records, 17)
}

func TestGenerateMany_ZeroIsEmpty(t *testing.T) {
	gen := newTestGenerator(t, types.DefaultVocabulary(), 5)

	records, err := gen.GenerateMany(0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGenerateMany_SeededReproducibility(t *testing.T) {
	a, err := newTestGenerator(t, types.DefaultVocabulary(), 42).GenerateMany(25)
	require.NoError(t, err)
	b, err := newTestGenerator(t, types.DefaultVocabulary(), 42).GenerateMany(25)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same seed must yield the same record sequence")
}

func TestGenerateOne_EmptySymptoms(t *testing.T) {
	vocab := types.DefaultVocabulary()
	vocab.Symptoms = nil
	gen := newTestGenerator(t, vocab, 6)

	_, err := gen.GenerateOne()
	var cfgErr *types.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
}

func TestGenerateOne_EmptyBodyParts(t *testing.T) {
	vocab := types.DefaultVocabulary()
	vocab.BodyParts = nil
	gen := newTestGenerator(t, vocab, 7)

	_, err := gen.GenerateOne()
	var cfgErr *types.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
}
