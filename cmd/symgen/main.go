// Command symgen generates a labeled symptom dataset and writes it to
// the configured sinks: JSONL/CSV flat files, and optionally a SQLite
// or PostgreSQL dataset store.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/medsynth/symgen/internal/config"
	"github.com/medsynth/symgen/internal/dataset"
	pgstore "github.com/medsynth/symgen/internal/dataset/postgres"
	"github.com/medsynth/symgen/internal/dataset/sqlite"
	"github.com/medsynth/symgen/internal/llm"
	"github.com/medsynth/symgen/internal/synth"
)

func main() {
	count := flag.Int("n", 100, "Number of records to generate")
	format := flag.String("format", "both", "Flat-file output: jsonl, csv or both")
	out := flag.String("out", "symptom_dataset", "Output file path without extension")
	seed := flag.Int64("seed", 0, "Random seed; 0 uses the current time")
	vocabPath := flag.String("vocab", "", "Path to a YAML vocabulary file (optional)")
	flag.Parse()

	if *format != "jsonl" && *format != "csv" && *format != "both" {
		log.Fatalf("Unknown format %q: use jsonl, csv or both", *format)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	vocab, err := config.LoadVocabulary(*vocabPath)
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gen := synth.NewRecordGenerator(vocab, rand.New(rand.NewSource(*seed)))

	records, err := gen.GenerateMany(*count)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	log.Printf("Generated %d records (seed %d)", len(records), *seed)

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	if *format == "jsonl" || *format == "both" {
		path := *out + ".jsonl"
		if err := dataset.Save(path, dataset.FormatJSONL, records); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		log.Printf("Wrote %s", path)
	}
	if *format == "csv" || *format == "both" {
		path := *out + ".csv"
		if err := dataset.Save(path, dataset.FormatCSV, records); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		log.Printf("Wrote %s", path)
	}

	ctx := context.Background()

	if cfg.Dataset.SQLitePath != "" {
		store, err := sqlite.New(cfg.Dataset.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open SQLite store: %v", err)
		}
		defer store.Close()

		runID, err := store.SaveRun(ctx, records)
		if err != nil {
			log.Fatalf("Failed to store run in SQLite: %v", err)
		}
		log.Printf("Stored run %s in %s", runID, cfg.Dataset.SQLitePath)
	}

	if cfg.Dataset.PostgresDSN != "" {
		var embedder llm.EmbeddingGenerator
		if cfg.Dataset.EmbedText {
			embedder, err = llm.NewEmbeddingGenerator(cfg.Oracle)
			if err != nil {
				log.Fatalf("Failed to build embedding generator: %v", err)
			}
		}

		store, err := pgstore.New(cfg.Dataset.PostgresDSN, embedder)
		if err != nil {
			log.Fatalf("Failed to open Postgres store: %v", err)
		}
		defer store.Close()

		runID, err := store.SaveRun(ctx, records)
		if err != nil {
			log.Fatalf("Failed to store run in Postgres: %v", err)
		}
		log.Printf("Stored run %s in Postgres", runID)
	}
}
