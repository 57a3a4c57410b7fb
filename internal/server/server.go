// Package server exposes the grammar analysis pipeline over HTTP (spec §6's
// domain-stack extension of the core's CLI surface): a single POST /analyze
// endpoint, bearer-JWT authenticated, that runs the same nullability ->
// FIRST -> FOLLOW -> PREDICT -> (optionally) LR automaton pipeline the CLI
// runs and returns the ambiguities/conflicts found. Routing, auth, and
// request correlation follow the teacher's own server package
// (server/server.go, server/token.go, server/endpoints.go).
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dekarrin/grampiler/internal/automaton"
	"github.com/dekarrin/grampiler/internal/diag"
	"github.com/dekarrin/grampiler/internal/gsource"
	"github.com/dekarrin/grampiler/internal/render"
)

// Server wraps the analysis pipeline in an HTTP API.
type Server struct {
	jwtSecret []byte
	router    chi.Router
}

// New builds a Server with the given JWT signing secret. An empty secret
// disables auth entirely, for local development.
func New(jwtSecret []byte) *Server {
	s := &Server{jwtSecret: jwtSecret}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestUUID)
	r.Use(middleware.Recoverer)
	if len(jwtSecret) > 0 {
		r.Use(s.requireBearer)
	}
	r.Post("/analyze", s.handleAnalyze)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on addr, blocking until it exits.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// requestUUID stamps every request with a fresh correlation ID in
// X-Request-Id, independent of chi's own middleware.RequestID (which uses a
// process-local counter rather than a globally unique ID).
func requestUUID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.NewRandom()
		if err == nil {
			w.Header().Set("X-Request-Id", id.String())
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

type requestIDKey struct{}

// requireBearer rejects any request without a valid HS512 bearer token
// signed with s.jwtSecret, the same Bearer-header contract the teacher's
// getJWT/validateAndLookupJWTUser pair uses, simplified to a single shared
// secret since this API has no user database to look a subject up in.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		_, err = jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
			return s.jwtSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithLeeway(time.Minute))
		if err != nil {
			writeError(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// analyzeRequest is the POST /analyze request body.
type analyzeRequest struct {
	Grammar string `json:"grammar"`
	Mode    string `json:"mode"` // "ll", "lr" (LR(1)), "lr0", or "lr1"
}

// analyzeResponse is the POST /analyze response body.
type analyzeResponse struct {
	LLConflicts []string `json:"ll_conflicts,omitempty"`
	LRConflicts []string `json:"lr_conflicts,omitempty"`
	Table       string   `json:"table,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed request body: %v", err))
		return
	}

	g, err := gsource.Parse(req.Grammar)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := g.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	llConflicts := g.Analyze()

	resp := analyzeResponse{}
	sink := &diag.CollectSink{}
	for _, c := range llConflicts {
		diag.ReportLLConflict(sink, c)
	}
	resp.LLConflicts = sink.Lines

	switch req.Mode {
	case "lr", "lr0", "lr1":
		table := automaton.Build(g, req.Mode == "lr0")
		lrSink := &diag.CollectSink{}
		for _, c := range automaton.DetectConflicts(table) {
			diag.ReportLRConflict(lrSink, c)
		}
		resp.LRConflicts = lrSink.Lines
		resp.Table = render.StateTable(table)
	case "", "ll":
		// LL-only request; nothing further to do.
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", req.Mode))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
