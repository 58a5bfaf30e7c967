package server

import (
	"encoding/json"
	"net/http"

	"github.com/aetherlearn/pathweaver/internal/types"
)

// SearchResponse is the body returned when a search is accepted.
type SearchResponse struct {
	SearchID string `json:"search_id"`
	Status   string `json:"status"`
}

// CustomizeRequest is the body for POST /paths/customize.
type CustomizeRequest struct {
	PathID      string             `json:"path_id"`
	Preferences *types.Preferences `json:"preferences,omitempty"`
}

// CustomizeResponse is the body returned when a path was customized.
type CustomizeResponse struct {
	SearchID string              `json:"search_id"`
	Path     *types.LearningPath `json:"path"`
}

// handleSearch accepts a search request and starts the pipeline in the
// background. The client polls /status/{id} for progress.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !s.rateLimiter.Allow(clientID(r)) {
		s.errorResponse(w, http.StatusTooManyRequests, "Too many searches, slow down")
		return
	}

	var req types.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	searchID, err := s.manager.StartSearch(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusAccepted, SearchResponse{
		SearchID: searchID,
		Status:   string(types.StateInitiated),
	})
}

// handleStatus returns the status ledger record for a search.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Search ID is required")
		return
	}

	status, err := s.manager.GetStatus(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load status")
		return
	}
	if status == nil {
		s.errorResponse(w, http.StatusNotFound, "Search not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, status)
}

// handleGetPath returns a stored learning path.
func (s *Server) handleGetPath(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Path ID is required")
		return
	}

	path, err := s.manager.GetPath(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load learning path")
		return
	}
	if path == nil {
		s.errorResponse(w, http.StatusNotFound, "Learning path not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, path)
}

// handleCustomize regenerates a stored path under new preferences.
func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	var req CustomizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.PathID == "" {
		s.errorResponse(w, http.StatusBadRequest, "path_id is required")
		return
	}

	searchID, path, err := s.manager.CustomizePath(r.Context(), req.PathID, req.Preferences)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, CustomizeResponse{
		SearchID: searchID,
		Path:     path,
	})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
