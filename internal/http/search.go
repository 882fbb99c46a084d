package httpserver

import "net/http"

// handleSearch always answers 200: every search state is renderable.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	result := s.deps.Search.Search(r.Context(), r.URL.Query().Get("title"))
	s.respondJSON(w, http.StatusOK, result)
}
