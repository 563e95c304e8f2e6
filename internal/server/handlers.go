package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"recipe-rag/internal/domain"
	"recipe-rag/internal/service"
)

type generateRequest struct {
	Keywords            []string `json:"keywords"`
	DietaryRestrictions string   `json:"dietary_restrictions"`
	Model               string   `json:"model"`
}

type searchRequest struct {
	Keywords []string `json:"keywords"`
	TopN     int      `json:"top_n"`
}

type searchResponse struct {
	Matches []domain.RankedMatch `json:"matches"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	keywords := cleanKeywords(req.Keywords)
	if len(keywords) == 0 {
		s.respondError(w, http.StatusBadRequest, service.ErrNoKeywords.Error())
		return
	}
	s.logger.Debug("generate request", zap.Strings("keywords", keywords), zap.String("model", req.Model))
	out := s.recipes.Generate(r.Context(), service.GenerateRequest{
		Keywords:            keywords,
		DietaryRestrictions: req.DietaryRestrictions,
		Model:               req.Model,
	})
	// A failed generation still yields a recipe; the kind field reports it.
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.Strings("keywords", req.Keywords), zap.Int("top_n", req.TopN))
	matches, err := s.recipes.Search(cleanKeywords(req.Keywords), req.TopN)
	if errors.Is(err, service.ErrNoKeywords) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, searchResponse{Matches: matches})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.recipes.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func cleanKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		out = append(out, service.SplitKeywords(k)...)
	}
	return out
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
