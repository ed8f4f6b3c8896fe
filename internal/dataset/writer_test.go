package dataset_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsynth/symgen/internal/dataset"
	"github.com/medsynth/symgen/pkg/types"
)

var testRecords = []types.SymptomRecord{
	{
		Text:  "I have been experiencing pain in my neck for 3 weeks. It's mild.",
		Label: "pain",
		Metadata: types.Metadata{
			Age: "20-30", Gender: "male", Severity: "mild", Duration: "3 weeks",
		},
	},
	{
		Text:  "I have been feeling fatigue for 8 weeks. It's severe.",
		Label: "fatigue",
		Metadata: types.Metadata{
			Age: "70+", Gender: "non-binary", Severity: "severe", Duration: "8 weeks",
		},
	},
}

func TestWriteJSONL_FormatContract(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dataset.WriteJSONL(&buf, testRecords))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	for i, line := range lines {
		var obj map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(line), &obj))
		// Exactly the keys text, label, metadata
		assert.Len(t, obj, 3)
		assert.Contains(t, obj, "text")
		assert.Contains(t, obj, "label")
		assert.Contains(t, obj, "metadata")

		var md map[string]string
		require.NoError(t, json.Unmarshal(obj["metadata"], &md))
		assert.Equal(t, map[string]string{
			"age":      testRecords[i].Metadata.Age,
			"gender":   testRecords[i].Metadata.Gender,
			"severity": testRecords[i].Metadata.Severity,
			"duration": testRecords[i].Metadata.Duration,
		}, md)
	}
}

func TestWriteJSONL_EmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dataset.WriteJSONL(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteCSV_FormatContract(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dataset.WriteCSV(&buf, testRecords))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"text", "label", "metadata"}, rows[0])
	assert.Equal(t, testRecords[0].Text, rows[1][0])
	assert.Equal(t, "pain", rows[1][1])

	// The metadata column holds the JSON form as a single string field.
	var md types.Metadata
	require.NoError(t, json.Unmarshal([]byte(rows[1][2]), &md))
	assert.Equal(t, testRecords[0].Metadata, md)
}

func TestSave_UnsupportedFormat(t *testing.T) {
	err := dataset.Save(t.TempDir()+"/out.xml", dataset.Format("xml"), testRecords)
	assert.Error(t, err)
}
