package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"chess5d/internal/game"
)

// Server wires the HTTP layer to the chess engine.
type Server struct {
	engineMu sync.Mutex
	engine   *game.Engine
	opts     Options
	log      zerolog.Logger
	srvMu    sync.Mutex
	srv      *http.Server
}

// Options carries the logger and HTTP timeouts. Zero timeouts fall back to
// the defaults below.
type Options struct {
	Logger            zerolog.Logger
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

func NewServer(engine *game.Engine, opts Options) *Server {
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	return &Server{
		engine: engine,
		opts:   opts,
		log:    opts.Logger.With().Str("component", "httpx").Logger(),
	}
}

// Listen starts the HTTP server and blocks until it is closed.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
		ReadTimeout:       s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		IdleTimeout:       s.opts.IdleTimeout,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.log.Info().Str("addr", addr).Msg("HTTP listening")
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/state", s.withJSON(s.handleState))
	mux.HandleFunc("/api/board", s.withJSON(s.handleBoard))
	mux.HandleFunc("/api/moves", s.withJSON(s.handleMoves))
	mux.HandleFunc("/api/move", s.withJSON(s.handleMove))
	mux.HandleFunc("/api/reset", s.withJSON(s.handleReset))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

// writeEngineError maps engine errors onto status codes.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, game.ErrInvalidMove) || errors.Is(err, game.ErrInvalidSetup) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error().Err(err).Msg("engine failure")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// decodeBody reads a JSON body into v, writing the error response itself
// when it fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// ---- API: state ----

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.engineMu.Lock()
	state := s.engine.State()
	s.engineMu.Unlock()
	writeJSON(w, map[string]any{"state": state})
}

// ---- API: board ----

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()
	t, errT := strconv.Atoi(q.Get("t"))
	u, errU := strconv.Atoi(q.Get("u"))
	if errT != nil || errU != nil {
		writeError(w, http.StatusBadRequest, "t and u must be integers")
		return
	}

	s.engineMu.Lock()
	var (
		state game.BoardState
		found bool
	)
	if b, ok := s.engine.BoardAt(t, u); ok {
		state = s.engine.BoardState(b)
		found = true
	}
	s.engineMu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "no board at that coordinate")
		return
	}
	writeJSON(w, map[string]any{"board": state})
}

// ---- API: destinations ----

type movesBody struct {
	Square game.Square5D `json:"square"`
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body movesBody
	if !decodeBody(w, r, &body) {
		return
	}

	s.engineMu.Lock()
	dests := s.engine.LegalDestinations(body.Square)
	s.engineMu.Unlock()

	if dests == nil {
		dests = []game.Square5D{}
	}
	writeJSON(w, map[string]any{"square": body.Square, "destinations": dests})
}

// ---- API: move ----

// MoveBody is the request body of POST /api/move.
type MoveBody struct {
	From game.Square5D `json:"from"`
	To   game.Square5D `json:"to"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var body MoveBody
	if !decodeBody(w, r, &body) {
		return
	}

	s.engineMu.Lock()
	next, err := s.engine.ExecuteMove(body.From, body.To)
	var (
		board game.BoardState
		state game.MultiverseState
	)
	if err == nil {
		board = s.engine.BoardState(next)
		state = s.engine.State()
	}
	s.engineMu.Unlock()

	if err != nil {
		s.log.Debug().Err(err).Stringer("from", body.From).Stringer("to", body.To).Msg("move refused")
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{"board": board, "state": state})
}

// ---- API: reset ----

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.Body != nil {
		r.Body.Close()
	}
	s.engineMu.Lock()
	err := s.engine.Reset()
	state := s.engine.State()
	s.engineMu.Unlock()

	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{"state": state})
}
