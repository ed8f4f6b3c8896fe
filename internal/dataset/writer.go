// Package dataset serializes synthesized symptom records to their
// output sinks: JSONL and CSV flat files, plus database stores in the
// sqlite and postgres subpackages.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/medsynth/symgen/pkg/types"
)

// Format selects a flat-file encoding.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
)

// WriteJSONL writes one JSON object per line, with exactly the keys
// text, label and metadata.
func WriteJSONL(w io.Writer, records []types.SymptomRecord) error {
	enc := json.NewEncoder(w)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return fmt.Errorf("dataset: failed to encode record: %w", err)
		}
	}
	return nil
}

// WriteCSV writes a header row "text,label,metadata"; the metadata
// column holds the JSON serialization of the metadata object as a
// single string field.
func WriteCSV(w io.Writer, records []types.SymptomRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"text", "label", "metadata"}); err != nil {
		return fmt.Errorf("dataset: failed to write header: %w", err)
	}
	for i := range records {
		md, err := json.Marshal(records[i].Metadata)
		if err != nil {
			return fmt.Errorf("dataset: failed to encode metadata: %w", err)
		}
		if err := cw.Write([]string{records[i].Text, records[i].Label, string(md)}); err != nil {
			return fmt.Errorf("dataset: failed to write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes records to a file in the given format.
func Save(path string, format Format, records []types.SymptomRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: failed to create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatJSONL:
		err = WriteJSONL(f, records)
	case FormatCSV:
		err = WriteCSV(f, records)
	default:
		return fmt.Errorf("dataset: unsupported format %q", format)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
