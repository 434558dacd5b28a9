package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"foundermatch/internal/domain"
)

func (s *Server) handleDecodeEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmailContent string `json:"emailContent"`
		IncludeSass  bool   `json:"includeSass"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	analysis, err := s.decoder.Decode(r.Context(), req.EmailContent, req.IncludeSass)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"analysis": analysis,
	})
}

func (s *Server) handleSignedURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeckAnalysis *domain.DeckAnalysis `json:"deckAnalysis"`
	}
	// An empty body is valid: the agent then keeps its defaults.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	grant, err := s.voice.Start(r.Context(), req.DeckAnalysis)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":              true,
		"signedUrl":            grant.SignedURL,
		"promptOverride":       grant.PromptOverride,
		"firstMessageOverride": grant.FirstMessageOverride,
	})
}

func (s *Server) handleGenerateTaglines(w http.ResponseWriter, r *http.Request) {
	result, err := s.backfill.Run(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"processed": result.Processed,
		"errors":    result.Errors,
		"total":     result.Total,
	})
}

func (s *Server) handleGetProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profiles, err := s.profiles.ListProfiles(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	if profiles == nil {
		profiles = []domain.FounderProfile{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.profiles.ListMatches(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	if matches == nil {
		matches = []domain.FounderMatch{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (s *Server) handleGetPublicProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.Public(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID  string  `json:"profileId"`
		Matched    *bool   `json:"matched"`
		Status     *string `json:"status"`
		AdminNotes *string `json:"admin_notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	profile, err := s.profiles.Update(r.Context(), req.ProfileID, domain.ProfileUpdate{
		Matched:    req.Matched,
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
