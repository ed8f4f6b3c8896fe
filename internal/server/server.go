// Package server exposes record and dialogue generation over HTTP,
// plus a websocket endpoint that streams records as they are produced.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"

	"nhooyr.io/websocket"

	"github.com/medsynth/symgen/internal/config"
	"github.com/medsynth/symgen/internal/dialogue"
	"github.com/medsynth/symgen/internal/llm"
	"github.com/medsynth/symgen/internal/prompt"
	"github.com/medsynth/symgen/internal/synth"
	"github.com/medsynth/symgen/pkg/types"
)

// maxRequestRecords caps a single records request; larger datasets
// belong in the CLI, not an HTTP response body.
const maxRequestRecords = 10000

// Server serves the generation API.
type Server struct {
	cfg     *config.Config
	vocab   types.Vocabulary
	oracle  llm.TextGenerator // may be nil; dialogue endpoints then return 503
	limiter *RateLimiter
}

// New creates a server over the given vocabulary and oracle. A nil
// limiter applies the default of 10 req/sec with a burst of 20.
func New(cfg *config.Config, vocab types.Vocabulary, oracle llm.TextGenerator, limiter *RateLimiter) *Server {
	if limiter == nil {
		limiter = NewRateLimiter(10.0, 20)
	}
	return &Server{cfg: cfg, vocab: vocab, oracle: oracle, limiter: limiter}
}

// Handler builds the routed HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/records", s.handleRecords)
	mux.HandleFunc("POST /api/dialogue", s.handleDialogue)
	mux.HandleFunc("GET /ws/records", s.handleRecordStream)

	var h http.Handler = mux
	h = rateLimitMiddleware(h, s.limiter)
	h = securityHeadersMiddleware(h)
	return h
}

// Start listens on the configured host/port and serves until ctx is
// cancelled. Returns the actual listen address (useful with port 0).
func (s *Server) Start(ctx context.Context) (string, error) {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("server: failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server: %v", err)
		}
	}()

	return ln.Addr().String(), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recordsRequest is the body for POST /api/records.
type recordsRequest struct {
	Count int    `json:"count"`
	Seed  *int64 `json:"seed,omitempty"` // optional; fixed seed gives a reproducible batch
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	var req recordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count < 0 || req.Count > maxRequestRecords {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("count must be in [0,%d]", maxRequestRecords))
		return
	}

	gen := synth.NewRecordGenerator(s.vocab, s.newRand(req.Seed))
	records, err := gen.GenerateMany(req.Count)
	if err != nil {
		writeGenerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

// dialogueRequest is the body for POST /api/dialogue.
type dialogueRequest struct {
	Pool           []string `json:"pool,omitempty"` // defaults to the configured symptom vocabulary
	MaxSymptoms    int      `json:"max_symptoms"`
	Register       string   `json:"register,omitempty"`
	Tone           string   `json:"tone,omitempty"`
	SpellingErrors bool     `json:"spelling_errors"`
	Seed           *int64   `json:"seed,omitempty"`
}

func (s *Server) handleDialogue(w http.ResponseWriter, r *http.Request) {
	if s.oracle == nil {
		writeError(w, http.StatusServiceUnavailable, "no oracle configured")
		return
	}

	var req dialogueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Pool) == 0 {
		req.Pool = s.vocab.Symptoms
	}
	if req.Register == "" {
		req.Register = s.cfg.Prompt.Register
	}
	if req.Tone == "" {
		req.Tone = s.cfg.Prompt.Tone
	}

	synthesizer := dialogue.NewSynthesizer(s.oracle, s.newRand(req.Seed))
	sample, err := synthesizer.Generate(r.Context(), dialogue.Request{
		Pool:        req.Pool,
		MaxSymptoms: req.MaxSymptoms,
		Style: prompt.Style{
			Register:       req.Register,
			Tone:           req.Tone,
			SpellingErrors: req.SpellingErrors,
		},
	})
	if err != nil {
		writeGenerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

// handleRecordStream streams count records over a websocket, one JSON
// message per record, then closes normally.
func (s *Server) handleRecordStream(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || count < 0 || count > maxRequestRecords {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("count must be an integer in [0,%d]", maxRequestRecords))
		return
	}

	var seed *int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
		seed = &parsed
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("server: websocket accept failed: %v", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	ctx := r.Context()
	gen := synth.NewRecordGenerator(s.vocab, s.newRand(seed))
	for i := 0; i < count; i++ {
		rec, err := gen.GenerateOne()
		if err != nil {
			conn.Close(websocket.StatusInternalError, err.Error())
			return
		}
		data, err := json.Marshal(rec)
		if err != nil {
			conn.Close(websocket.StatusInternalError, "encoding failed")
			return
		}
		if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
			return
		}
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

// newRand builds the per-request random source: seeded when the caller
// asks for reproducibility, time-seeded otherwise.
func (s *Server) newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeGenerationError maps the error taxonomy onto HTTP statuses:
// bad vocabulary or arguments are client errors, oracle failures are
// upstream errors.
func writeGenerationError(w http.ResponseWriter, err error) {
	var cfgErr *types.ConfigError
	var valErr *types.ValueError
	var oracleErr *types.OracleError
	switch {
	case errors.As(err, &valErr), errors.As(err, &cfgErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &oracleErr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
