package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
	"github.com/Clark-Hu/movie-reviews/internal/service"
)

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var input domain.ReviewInput
	if isForm(r) {
		if err := parseForm(w, r); err != nil {
			s.respondDecodeError(w, err)
			return
		}
		var err error
		input, err = reviewInputFromForm(r)
		if err != nil {
			s.respondDecodeError(w, err)
			return
		}
	} else if err := decodeJSONBody(w, r, &input); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	result, err := s.deps.Reviews.Submit(r.Context(), input)
	s.respondReviewResult(w, http.StatusCreated, result, err)
}

func (s *Server) handleEditReview(w http.ResponseWriter, r *http.Request) {
	var update domain.ReviewUpdate
	if isForm(r) {
		if err := parseForm(w, r); err != nil {
			s.respondDecodeError(w, err)
			return
		}
		var err error
		update, err = reviewUpdateFromForm(r)
		if err != nil {
			s.respondDecodeError(w, err)
			return
		}
	} else if err := decodeJSONBody(w, r, &update); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	result, err := s.deps.Reviews.Edit(r.Context(), chi.URLParam(r, "id"), update)
	s.respondReviewResult(w, http.StatusOK, result, err)
}

func (s *Server) handleRemoveReview(w http.ResponseWriter, r *http.Request) {
	fallback := r.URL.Query().Get("movieTitle")
	result, err := s.deps.Reviews.Remove(r.Context(), chi.URLParam(r, "id"), fallback)
	s.respondReviewResult(w, http.StatusOK, result, err)
}

func (s *Server) handleReact(reaction domain.Reaction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.deps.Reviews.React(r.Context(), chi.URLParam(r, "id"), reaction)
		s.respondReviewResult(w, http.StatusOK, result, err)
	}
}

// respondReviewResult writes the re-rendered search view, or the error with
// that view attached when the workflow could still render one.
func (s *Server) respondReviewResult(w http.ResponseWriter, status int, result service.SearchResult, err error) {
	if err != nil {
		var details interface{}
		if result.Query != "" {
			details = result
		}
		s.respondAppError(w, err, details)
		return
	}
	s.respondJSON(w, status, result)
}

func reviewInputFromForm(r *http.Request) (domain.ReviewInput, error) {
	input := domain.ReviewInput{
		MovieTitle: r.PostFormValue("movieTitle"),
		Comment:    r.PostFormValue("comment"),
		Author:     r.PostFormValue("author"),
	}
	rating, err := parseRating(r.PostFormValue("rating"))
	if err != nil {
		return domain.ReviewInput{}, err
	}
	input.Rating = rating
	return input, nil
}

func reviewUpdateFromForm(r *http.Request) (domain.ReviewUpdate, error) {
	var update domain.ReviewUpdate
	rating, err := parseRating(r.PostFormValue("rating"))
	if err != nil {
		return domain.ReviewUpdate{}, err
	}
	update.Rating = rating
	if _, ok := r.PostForm["comment"]; ok {
		comment := r.PostFormValue("comment")
		update.Comment = &comment
	}
	return update, nil
}

// parseRating returns nil for an absent value so validation can report it as
// missing.
func parseRating(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: rating must be a number", errBadForm)
	}
	return &rating, nil
}
