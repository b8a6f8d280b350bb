package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rigcheck/rigcheck-go/internal/filter"
	"github.com/rigcheck/rigcheck-go/internal/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStats reports in-memory runtime statistics; counters reset on restart.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.advisor.Stats())
}

// handleComponents treats every query parameter except "category" as a
// filter predicate; brand/min_price/max_price resolve against indexed
// columns, everything else against specs (dotted paths allowed).
func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	preds := filter.Predicates{}
	var category models.Category
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		if key == "category" {
			category = models.Category(values[0])
			continue
		}
		preds[key] = values[0]
	}

	components, err := s.advisor.QueryComponents(r.Context(), category, preds)
	if err != nil {
		s.logger.Error("component query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "component query failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"components": components,
		"count":      len(components),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.advisor.Categories(r.Context())
	if err != nil {
		s.logger.Error("category listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "category listing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request) {
	category := models.Category(chi.URLParam(r, "category"))
	brands, err := s.advisor.Brands(r.Context(), category)
	if err != nil {
		s.logger.Error("brand listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "brand listing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"brands": brands})
}

type compatibilityRequest struct {
	ComponentA models.Component `json:"component_a"`
	ComponentB models.Component `json:"component_b"`
}

func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	var req compatibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ComponentA.Category == "" || req.ComponentB.Category == "" {
		writeError(w, http.StatusBadRequest, "both components need a category")
		return
	}

	verdict := s.advisor.CheckPair(r.Context(), req.ComponentA, req.ComponentB)
	writeJSON(w, http.StatusOK, verdict)
}

type buildRequest struct {
	Components []models.Component `json:"components"`
}

func (s *Server) handlePower(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, s.advisor.EstimatePower(req.Components))
}

func (s *Server) handleBuildCheck(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, s.advisor.CheckBuild(r.Context(), req.Components))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
