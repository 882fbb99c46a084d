package httpserver

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
)

const (
	sessionName   = "movie_reviews_session"
	sessionUserID = "user_id"
)

// Authenticator answers "is a session present" and manages that session.
type Authenticator interface {
	IsAuthenticated(r *http.Request) bool
	SignIn(w http.ResponseWriter, r *http.Request, user domain.User) error
	SignOut(w http.ResponseWriter, r *http.Request) error
}

// UserFinder resolves the account a session points at.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// SessionAuthenticator keeps the signed-in user id in a signed cookie and
// resolves it against the account store on every check.
type SessionAuthenticator struct {
	store sessions.Store
	users UserFinder
}

// NewSessionAuthenticator builds a cookie-backed authenticator. secure should
// be true whenever the service is served over HTTPS.
func NewSessionAuthenticator(users UserFinder, secret string, maxAgeSecs int, secure bool) *SessionAuthenticator {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeSecs,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionAuthenticator{store: store, users: users}
}

// CurrentUser returns the account behind the request's session. A session for
// an account that no longer exists is treated as absent.
func (a *SessionAuthenticator) CurrentUser(r *http.Request) (domain.User, bool) {
	session, err := a.store.Get(r, sessionName)
	if err != nil {
		return domain.User{}, false
	}
	id, ok := session.Values[sessionUserID].(string)
	if !ok || id == "" {
		return domain.User{}, false
	}
	user, err := a.users.GetByID(r.Context(), id)
	if err != nil {
		return domain.User{}, false
	}
	return user, true
}

// IsAuthenticated reports whether the request carries a session for an
// existing account.
func (a *SessionAuthenticator) IsAuthenticated(r *http.Request) bool {
	_, ok := a.CurrentUser(r)
	return ok
}

// SignIn stores user's id in the session cookie.
func (a *SessionAuthenticator) SignIn(w http.ResponseWriter, r *http.Request, user domain.User) error {
	// A stale or tampered cookie yields an error alongside a fresh session.
	session, _ := a.store.Get(r, sessionName)
	session.Values[sessionUserID] = user.ID
	return session.Save(r, w)
}

// SignOut expires the session cookie.
func (a *SessionAuthenticator) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := a.store.Get(r, sessionName)
	delete(session.Values, sessionUserID)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
