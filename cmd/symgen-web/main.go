// Command symgen-web serves the record and dialogue generation API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/medsynth/symgen/internal/config"
	"github.com/medsynth/symgen/internal/llm"
	"github.com/medsynth/symgen/internal/server"
)

func main() {
	vocabPath := flag.String("vocab", "", "Path to a YAML vocabulary file (optional)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	vocab, err := config.LoadVocabulary(*vocabPath)
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}

	oracle, err := llm.NewTextGenerator(cfg.Oracle)
	if err != nil {
		log.Fatalf("Failed to build oracle client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.New(cfg, vocab, oracle, nil)
	addr, err := srv.Start(ctx)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("symgen API running at http://%s", addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()
}
