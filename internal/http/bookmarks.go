package httpserver

import (
	"net/http"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
)

type bookmarkRequest struct {
	MovieTitle string `json:"movieTitle"`
}

type bookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type bookmarkListResponse struct {
	Items []domain.Bookmark `json:"items"`
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	var req bookmarkRequest
	if isForm(r) {
		if err := parseForm(w, r); err != nil {
			s.respondDecodeError(w, err)
			return
		}
		req.MovieTitle = r.PostFormValue("movieTitle")
	} else if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	bookmarked, err := s.deps.Bookmarks.Toggle(r.Context(), req.MovieTitle)
	if err != nil {
		s.respondAppError(w, err, nil)
		return
	}
	s.respondJSON(w, http.StatusOK, bookmarkResponse{Bookmarked: bookmarked})
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.deps.Bookmarks.List(r.Context())
	if err != nil {
		s.respondAppError(w, err, nil)
		return
	}
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	s.respondJSON(w, http.StatusOK, bookmarkListResponse{Items: bookmarks})
}
