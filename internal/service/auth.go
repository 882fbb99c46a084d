package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
	"github.com/Clark-Hu/movie-reviews/internal/errs"
	"github.com/Clark-Hu/movie-reviews/internal/repository"
)

const msgBadCredentials = "Invalid email or password."

// Credentials is the body of register and login requests.
type Credentials struct {
	Email    string `json:"email" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

// AuthWorkflow registers accounts and checks passwords. Session handling
// lives at the web boundary.
type AuthWorkflow struct {
	users    UserStore
	validate *Validator
	logger   *zap.SugaredLogger
}

// NewAuthWorkflow wires the auth workflow.
func NewAuthWorkflow(users UserStore, validate *Validator, logger *zap.SugaredLogger) *AuthWorkflow {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &AuthWorkflow{users: users, validate: validate, logger: logger}
}

// Register creates an account with a bcrypt-hashed password.
func (w *AuthWorkflow) Register(ctx context.Context, creds Credentials) (domain.User, error) {
	if err := w.validate.Validate(creds); err != nil {
		return domain.User{}, err
	}
	hash, err := domain.HashPassword(creds.Password)
	if err != nil {
		w.logger.Errorw("auth: hash password", "error", err)
		return domain.User{}, errs.Errorf(errs.EINTERNAL, "Could not create the account.")
	}

	user, err := w.users.Create(ctx, normalizeEmail(creds.Email), hash)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return domain.User{}, errs.Errorf(errs.ECONFLICT, "Email is already registered.")
		}
		reportStoreError(ctx, w.logger, "auth: create user", err)
		return domain.User{}, errs.Errorf(errs.EINTERNAL, "Could not create the account.")
	}
	w.logger.Infow("auth: user registered", "user_id", user.ID)
	return user, nil
}

// Login returns the account when the password matches.
func (w *AuthWorkflow) Login(ctx context.Context, creds Credentials) (domain.User, error) {
	if err := w.validate.Validate(creds); err != nil {
		return domain.User{}, err
	}
	user, err := w.users.GetByEmail(ctx, normalizeEmail(creds.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, errs.Errorf(errs.EUNAUTHORIZED, msgBadCredentials)
		}
		reportStoreError(ctx, w.logger, "auth: load user", err)
		return domain.User{}, errs.Errorf(errs.EINTERNAL, "Could not sign in. Please try again later.")
	}
	if !user.MatchPassword(creds.Password) {
		return domain.User{}, errs.Errorf(errs.EUNAUTHORIZED, msgBadCredentials)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
