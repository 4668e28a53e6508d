package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/repositories"
	"github.com/dmitrijs2005/gophrecipes/internal/client/token"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"github.com/dmitrijs2005/gophrecipes/internal/dbx"
	"github.com/dmitrijs2005/gophrecipes/internal/logging"
)

// Session is a decoded, unexpired credential.
type Session struct {
	Token  string
	Claims token.Claims
}

// CredentialStore owns the single process-wide credential slot.
type CredentialStore struct {
	db    *sql.DB
	repos repositories.Manager
	codec token.Codec
	now   func() time.Time
	log   logging.Logger
}

func NewCredentialStore(db *sql.DB, repos repositories.Manager, codec token.Codec, now func() time.Time, log logging.Logger) *CredentialStore {
	if now == nil {
		now = time.Now
	}
	return &CredentialStore{db: db, repos: repos, codec: codec, now: now, log: log}
}

func (s *CredentialStore) Codec() token.Codec { return s.codec }

func (s *CredentialStore) Save(ctx context.Context, tok string) error {
	return s.saveTx(ctx, s.db, tok)
}

func (s *CredentialStore) saveTx(ctx context.Context, tx dbx.DBTX, tok string) error {
	if err := s.repos.Metadata(tx).Set(ctx, common.AuthTokenKey, []byte(tok)); err != nil {
		return fmt.Errorf("credential save: %w", err)
	}
	return nil
}

// Load returns the stored session, or (nil, nil) when there is none. An
// undecodable or expired token is removed from storage before returning.
func (s *CredentialStore) Load(ctx context.Context) (*Session, error) {
	raw, err := s.repos.Metadata(s.db).Get(ctx, common.AuthTokenKey)
	if err != nil {
		return nil, fmt.Errorf("credential load: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	claims, err := s.codec.Decode(string(raw))
	if err != nil || claims.IsExpired(s.now()) {
		reason := "expired"
		if err != nil {
			reason = "invalid"
		}
		s.log.Info(ctx, "discarding stored credential", "reason", reason)
		if err := s.discard(ctx, raw); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &Session{Token: string(raw), Claims: *claims}, nil
}

// Require is Load that turns a missing session into common.ErrUnauthorized.
func (s *CredentialStore) Require(ctx context.Context) (*Session, error) {
	sess, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, common.ErrUnauthorized
	}
	return sess, nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.repos.Metadata(s.db).Delete(ctx, common.AuthTokenKey); err != nil {
		return fmt.Errorf("credential clear: %w", err)
	}
	return nil
}

// discard removes the stored token only if it is still raw, so a Save that
// lands after the read keeps its fresh token.
func (s *CredentialStore) discard(ctx context.Context, raw []byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		removed, err := s.repos.Metadata(tx).DeleteIfEqual(ctx, common.AuthTokenKey, raw)
		if err != nil {
			return fmt.Errorf("credential clear: %w", err)
		}
		if !removed {
			s.log.Debug(ctx, "stored credential changed before discard, keeping it")
		}
		return nil
	})
}

// LoadOrCreateSecret returns the signing secret kept in metadata, generating
// and storing a random one on first use.
func LoadOrCreateSecret(ctx context.Context, db *sql.DB, repos repositories.Manager) ([]byte, error) {
	var secret []byte
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := repos.Metadata(tx)

		stored, err := meta.Get(ctx, common.TokenSecretKey)
		if err != nil {
			return err
		}
		if len(stored) > 0 {
			secret = stored
			return nil
		}

		secret = common.GenerateRandByteArray(32)
		return meta.Set(ctx, common.TokenSecretKey, secret)
	})
	if err != nil {
		return nil, fmt.Errorf("token secret: %w", err)
	}
	if len(secret) == 0 {
		return nil, errors.New("token secret: empty")
	}
	return secret, nil
}
