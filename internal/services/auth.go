package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/sbilibin2017/gw-finance-tracker/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string) (int64, error)
	Update(ctx context.Context, id int64, username, email string, passwordHash *string) error
}

// TokenGenerator issues session tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID int64, username string) (string, error)
}

// SessionRevoker invalidates a session before it expires.
type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
}

// AuthService handles registration, login, logout and profile changes.
type AuthService struct {
	reader  UserReader
	writer  UserWriter
	tokens  TokenGenerator
	revoker SessionRevoker // nil disables revocation
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenGenerator, revoker SessionRevoker) *AuthService {
	return &AuthService{
		reader:  reader,
		writer:  writer,
		tokens:  tokens,
		revoker: revoker,
	}
}

// Register creates a new account.
func (svc *AuthService) Register(ctx context.Context, username, email, password, confirmPassword string) error {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" || confirmPassword == "" {
		return validationError("all fields are required")
	}
	if password != confirmPassword {
		return validationError("passwords do not match")
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		log.Errorw("failed to check username", "err", err)
		return databaseError("registration failed, please try again", err)
	}
	if user != nil {
		return conflictError("username already taken")
	}

	user, err = svc.reader.GetByEmail(ctx, email)
	if err != nil {
		log.Errorw("failed to check email", "err", err)
		return databaseError("registration failed, please try again", err)
	}
	if user != nil {
		return conflictError("email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("failed to hash password", "err", err)
		return err
	}

	id, err := svc.writer.Save(ctx, username, email, string(hashedPassword))
	if errors.Is(err, repositories.ErrAlreadyExists) {
		return conflictError("username or email already taken")
	}
	if err != nil {
		log.Errorw("failed to save user", "err", err)
		return databaseError("registration failed, please try again", err)
	}

	log.Infow("user registered", "user_id", id, "username", username)
	return nil
}

// Login checks the credentials and returns a session token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", validationError("username and password are required")
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		log.Errorw("failed to get user", "err", err)
		return "", databaseError("login failed, please try again", err)
	}
	if user == nil {
		log.Infow("login for unknown user", "username", username)
		return "", invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Infow("invalid credentials", "username", username)
		return "", invalidCredentials()
	}

	token, err := svc.tokens.Generate(ctx, user.ID, user.Username)
	if err != nil {
		log.Errorw("failed to generate session token", "err", err)
		return "", err
	}

	return token, nil
}

func invalidCredentials() error {
	return &Error{Kind: ErrInvalidCredentials, Message: "invalid username or password"}
}

// Logout revokes the session for the rest of its lifetime.
func (svc *AuthService) Logout(ctx context.Context, session models.Session) error {
	if svc.revoker == nil || session.SessionID == "" {
		return nil
	}

	if err := svc.revoker.Revoke(ctx, session.SessionID, time.Until(session.ExpiresAt)); err != nil {
		logger.FromContext(ctx).Errorw("failed to revoke session", "user_id", session.UserID, "err", err)
		return err
	}
	return nil
}

// GetProfile returns the user shown on the settings page.
func (svc *AuthService) GetProfile(ctx context.Context, userID int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, databaseError("could not load profile", err)
	}
	if user == nil {
		return nil, notFoundError("user not found")
	}
	return user, nil
}

// UpdateProfile changes username, email and optionally the password, and
// returns a fresh session token that carries the new username. The session
// the change was made from is revoked once the new token exists.
func (svc *AuthService) UpdateProfile(ctx context.Context, session models.Session, in models.ProfileInput) (string, error) {
	log := logger.FromContext(ctx)
	userID := session.UserID

	user, err := svc.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return "", &Error{Kind: ErrInvalidCredentials, Message: "current password is not valid"}
	}

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" {
		return "", validationError("username and email are required")
	}

	if username != user.Username {
		other, err := svc.reader.GetByUsername(ctx, username)
		if err != nil {
			log.Errorw("failed to check username", "err", err)
			return "", databaseError("could not update profile", err)
		}
		if other != nil && other.ID != userID {
			return "", conflictError("username is already used by another user")
		}
	}

	if email != user.Email {
		other, err := svc.reader.GetByEmail(ctx, email)
		if err != nil {
			log.Errorw("failed to check email", "err", err)
			return "", databaseError("could not update profile", err)
		}
		if other != nil && other.ID != userID {
			return "", conflictError("email is already used by another user")
		}
	}

	var passwordHash *string
	if in.NewPassword != "" {
		if in.NewPassword != in.ConfirmPassword {
			return "", validationError("new password and confirmation do not match")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Errorw("failed to hash password", "err", err)
			return "", err
		}
		h := string(hashed)
		passwordHash = &h
	}

	err = svc.writer.Update(ctx, userID, username, email, passwordHash)
	if errors.Is(err, repositories.ErrAlreadyExists) {
		return "", conflictError("username or email is already used by another user")
	}
	if err != nil {
		log.Errorw("failed to update user", "user_id", userID, "err", err)
		return "", databaseError("could not update profile", err)
	}

	token, err := svc.tokens.Generate(ctx, userID, username)
	if err != nil {
		log.Errorw("failed to generate session token", "err", err)
		return "", err
	}

	// The profile is already saved, so a failed revocation only leaves the
	// old token valid until it expires.
	if err := svc.Logout(ctx, session); err != nil {
		log.Warnw("previous session not revoked after profile update", "user_id", userID, "err", err)
	}

	log.Infow("profile updated", "user_id", userID, "password_changed", passwordHash != nil)
	return token, nil
}
