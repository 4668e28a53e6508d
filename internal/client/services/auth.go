package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/client/repositories"
	"github.com/dmitrijs2005/gophrecipes/internal/client/token"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"github.com/dmitrijs2005/gophrecipes/internal/cryptox"
	"github.com/dmitrijs2005/gophrecipes/internal/dbx"
	"github.com/dmitrijs2005/gophrecipes/internal/logging"
	"github.com/google/uuid"
)

// Demo account seeded by EnsureDemoUser.
const (
	DemoUserName     = "Test User"
	DemoUserEmail    = "test@example.com"
	DemoUserPassword = "password"
)

// AuthService registers and signs in local accounts. A successful register
// or login replaces the stored credential.
type AuthService struct {
	db    *sql.DB
	repos repositories.Manager
	creds *CredentialStore
	ttl   time.Duration
	now   func() time.Time
	log   logging.Logger
}

func NewAuthService(db *sql.DB, repos repositories.Manager, creds *CredentialStore, ttl time.Duration, log logging.Logger) *AuthService {
	return &AuthService{db: db, repos: repos, creds: creds, ttl: ttl, now: time.Now, log: log}
}

// Register creates the account and signs it in within one transaction, so a
// failure leaves neither a user row nor a credential behind.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateAccount(name, email, password); err != nil {
		return nil, err
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: cryptox.HashPassword([]byte(password), salt),
		Salt:         salt,
		CreatedAt:    s.now().UTC(),
	}

	var resp *models.AuthResponse
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repos.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}

		tok, err := s.issue(created)
		if err != nil {
			return err
		}
		if err := s.creds.saveTx(ctx, tx, tok); err != nil {
			return err
		}

		resp = &models.AuthResponse{User: *created, Token: tok}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrUserExists) {
			return nil, common.ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info(ctx, "user registered", "user", resp.User.ID)
	return resp, nil
}

// Login fails with common.ErrInvalidCredentials for an unknown email and for
// a wrong password alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !cryptox.VerifyPassword([]byte(password), user.Salt, user.PasswordHash) {
		s.log.Info(ctx, "login rejected", "email", user.Email)
		return nil, common.ErrInvalidCredentials
	}

	tok, err := s.issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.creds.Save(ctx, tok); err != nil {
		return nil, err
	}

	return &models.AuthResponse{User: *user, Token: tok}, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.creds.Clear(ctx)
}

// CurrentUser returns the signed-in user, or (nil, nil) without a valid
// session. When the account row is gone the user is rebuilt from the
// credential's claims.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	sess, err := s.creds.Load(ctx)
	if err != nil || sess == nil {
		return nil, err
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, sess.Claims.UserID)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return &models.User{ID: sess.Claims.UserID, Name: sess.Claims.Name, Email: sess.Claims.Email}, nil
	case err != nil:
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// EnsureDemoUser creates the demo account unless it already exists. It does
// not touch the stored credential.
func (s *AuthService) EnsureDemoUser(ctx context.Context) error {
	users := s.repos.Users(s.db)

	_, err := users.GetByEmail(ctx, DemoUserEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("demo user: %w", err)
	}

	salt := cryptox.NewSalt()
	_, err = users.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Name:         DemoUserName,
		Email:        DemoUserEmail,
		PasswordHash: cryptox.HashPassword([]byte(DemoUserPassword), salt),
		Salt:         salt,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil && !errors.Is(err, common.ErrUserExists) {
		return fmt.Errorf("demo user: %w", err)
	}
	return nil
}

func (s *AuthService) issue(u *models.User) (string, error) {
	return s.creds.Codec().Issue(token.Claims{UserID: u.ID, Name: u.Name, Email: u.Email}, s.ttl)
}

func validateAccount(name, email, password string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email %q", common.ErrInvalidInput, email)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrInvalidInput)
	}
	return nil
}
