package httpserver

import (
	"net/http"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
	"github.com/Clark-Hu/movie-reviews/internal/errs"
	"github.com/Clark-Hu/movie-reviews/internal/service"
)

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s *Server) decodeCredentials(w http.ResponseWriter, r *http.Request) (service.Credentials, bool) {
	var creds service.Credentials
	if isForm(r) {
		if err := parseForm(w, r); err != nil {
			s.respondDecodeError(w, err)
			return creds, false
		}
		creds.Email = r.PostFormValue("email")
		creds.Password = r.PostFormValue("password")
		return creds, true
	}
	if err := decodeJSONBody(w, r, &creds); err != nil {
		s.respondDecodeError(w, err)
		return creds, false
	}
	return creds, true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	creds, ok := s.decodeCredentials(w, r)
	if !ok {
		return
	}
	user, err := s.deps.Auth.Register(r.Context(), creds)
	if err != nil {
		s.respondAppError(w, err, nil)
		return
	}
	s.signIn(w, r, user, http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := s.decodeCredentials(w, r)
	if !ok {
		return
	}
	user, err := s.deps.Auth.Login(r.Context(), creds)
	if err != nil {
		s.respondAppError(w, err, nil)
		return
	}
	s.signIn(w, r, user, http.StatusOK)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s.deps.Authenticator != nil {
		if err := s.deps.Authenticator.SignOut(w, r); err != nil {
			s.logger.Warnw("http: sign out failed", "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request, user domain.User, status int) {
	if s.deps.Authenticator == nil {
		s.respondError(w, http.StatusServiceUnavailable, errs.EUNAVAILABLE, "Sessions are not configured")
		return
	}
	if err := s.deps.Authenticator.SignIn(w, r, user); err != nil {
		s.logger.Errorw("http: save session", "error", err, "user_id", user.ID)
		s.respondError(w, http.StatusInternalServerError, errs.EINTERNAL, "Internal error.")
		return
	}
	s.respondJSON(w, status, userResponse{ID: user.ID, Email: user.Email})
}
