// Command symgen-dialogue generates patient dialogues through the
// configured text-generation oracle and prints them to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/medsynth/symgen/internal/config"
	"github.com/medsynth/symgen/internal/dialogue"
	"github.com/medsynth/symgen/internal/llm"
	"github.com/medsynth/symgen/internal/prompt"
)

// defaultPool is the demo symptom pool used when no vocabulary file is given.
var defaultPool = []string{
	"fatigue", "nausea", "chest pain", "loss of appetite",
	"headache", "insomnia", "dizziness", "fever", "persistent cough",
}

func main() {
	count := flag.Int("n", 5, "Number of dialogues to generate")
	maxSymptoms := flag.Int("max-symptoms", 3, "Maximum symptoms per dialogue")
	register := flag.String("register", "familiar", "Language register for the patient")
	tone := flag.String("tone", "anxious", "Tone of the patient")
	spellingErrors := flag.Bool("spelling-errors", true, "Instruct the model to include spelling errors")
	seed := flag.Int64("seed", 0, "Random seed for symptom sampling; 0 uses the current time")
	vocabPath := flag.String("vocab", "", "Path to a YAML vocabulary file (optional)")
	skipFailures := flag.Bool("skip-failures", false, "Continue the batch when a single dialogue fails")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool := defaultPool
	if *vocabPath != "" {
		vocab, err := config.LoadVocabulary(*vocabPath)
		if err != nil {
			log.Fatalf("Failed to load vocabulary: %v", err)
		}
		pool = vocab.Symptoms
	}

	oracle, err := llm.NewTextGenerator(cfg.Oracle)
	if err != nil {
		log.Fatalf("Failed to build oracle client: %v", err)
	}
	log.Printf("Using %s oracle (model %s)", cfg.Oracle.Provider, oracle.Model())

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	synthesizer := dialogue.NewSynthesizer(oracle, rand.New(rand.NewSource(*seed)))

	req := dialogue.Request{
		Pool:        pool,
		MaxSymptoms: *maxSymptoms,
		Style: prompt.Style{
			Register:       *register,
			Tone:           *tone,
			SpellingErrors: *spellingErrors,
		},
	}

	samples, err := synthesizer.GenerateBatch(context.Background(), req, *count, *skipFailures)
	if err != nil {
		log.Fatalf("Dialogue generation failed: %v", err)
	}

	for i, sample := range samples {
		fmt.Printf("Dialogue %d [%s]:\n%s\n\n", i+1, strings.Join(sample.Symptoms, ", "), sample.Text)
	}
}
