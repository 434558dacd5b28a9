package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"foundermatch/internal/infrastructure/auth"
	"foundermatch/internal/infrastructure/llm"
	"foundermatch/internal/infrastructure/storage"
	"foundermatch/internal/ports"
	"foundermatch/internal/usecase"
)

const adminRole = "admin"

// Server exposes the serverless-function surface as plain HTTP handlers.
type Server struct {
	decoder  *usecase.EmailDecoder
	voice    *usecase.VoiceSession
	backfill *usecase.TaglineBackfill
	profiles *usecase.ProfileService
	verifier ports.TokenVerifier
	logger   *slog.Logger
}

// Deps wires every use case the server fronts.
type Deps struct {
	Decoder  *usecase.EmailDecoder
	Voice    *usecase.VoiceSession
	Backfill *usecase.TaglineBackfill
	Profiles *usecase.ProfileService
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
}

// NewServer builds the handler set.
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		decoder:  deps.Decoder,
		voice:    deps.Voice,
		backfill: deps.Backfill,
		profiles: deps.Profiles,
		verifier: deps.Verifier,
		logger:   logger,
	}
}

// Routes assembles the full mux. Every route answers OPTIONS pre-flight and
// replies with permissive CORS headers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/functions/decode-email", s.withCORS(methodOnly(http.MethodPost, s.handleDecodeEmail)))
	mux.HandleFunc("/functions/elevenlabs-signed-url", s.withCORS(methodOnly(http.MethodPost, s.handleSignedURL)))
	mux.HandleFunc("/functions/generate-taglines", s.withCORS(methodOnly(http.MethodPost, s.requireAdmin(s.handleGenerateTaglines))))
	mux.HandleFunc("/functions/get-profiles", s.withCORS(s.requireAdmin(s.handleGetProfiles)))
	mux.HandleFunc("/functions/get-matches", s.withCORS(methodOnly(http.MethodGet, s.requireAdmin(s.handleGetMatches))))
	mux.HandleFunc("/functions/get-public-profile", s.withCORS(methodOnly(http.MethodGet, s.handleGetPublicProfile)))
	mux.HandleFunc("/functions/update-profile", s.withCORS(methodOnly(http.MethodPost, s.requireAdmin(s.handleUpdateProfile))))
	mux.HandleFunc("/healthz", s.withCORS(s.handleHealth))

	return mux
}

// withCORS sets permissive headers and short-circuits pre-flight requests.
func (s *Server) withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "authorization, content-type, apikey")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// requireAdmin verifies the bearer token against the auth provider and then
// checks role membership through the privileged channel. Nothing from the
// client is trusted.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := s.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				s.writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			s.logger.Error("token verification failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "authorization check failed")
			return
		}

		isAdmin, err := s.verifier.HasRole(r.Context(), userID, adminRole)
		if err != nil {
			s.logger.Error("role check failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "authorization check failed")
			return
		}
		if !isAdmin {
			s.writeError(w, http.StatusForbidden, "admin role required")
			return
		}

		next(w, r)
	}
}

func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	value := r.Header.Get("Authorization")
	if value == "" {
		return ""
	}
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeFailure maps a use-case error to its HTTP status. Internal detail is
// logged, never echoed to the client.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "profile not found")
	case errors.Is(err, llm.ErrRateLimited):
		s.writeError(w, http.StatusTooManyRequests, "rate limited, try again shortly")
	case errors.Is(err, llm.ErrUnavailable):
		s.writeError(w, http.StatusPaymentRequired, "analysis service unavailable")
	case errors.Is(err, llm.ErrAnalysisParse):
		s.logger.Error("analysis parse failure", "error", err)
		s.writeError(w, http.StatusInternalServerError, "could not parse analysis")
	case errors.Is(err, context.Canceled):
		s.writeError(w, http.StatusInternalServerError, "request cancelled")
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
