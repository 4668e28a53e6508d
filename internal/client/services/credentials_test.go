package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/token"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_EmptyIsNoSession(t *testing.T) {
	env := newTestEnv(t, nil)

	sess, err := env.creds.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)

	_, err = env.creds.Require(context.Background())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCredentialStore_ExpiredTokenSelfClears(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	tok, err := env.creds.Codec().Issue(token.Claims{UserID: "u1", Name: "A", Email: "a@example.com"}, -1)
	require.NoError(t, err)
	require.NoError(t, env.creds.Save(ctx, tok))

	sess, err := env.creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	raw, err := env.repos.Metadata(env.db).Get(ctx, common.AuthTokenKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestCredentialStore_GarbageTokenSelfClears(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	require.NoError(t, env.creds.Save(ctx, "not-a-token"))

	sess, err := env.creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	raw, err := env.repos.Metadata(env.db).Get(ctx, common.AuthTokenKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestCredentialStore_ValidTokenRoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	tok, err := env.creds.Codec().Issue(token.Claims{UserID: "u1", Name: "A", Email: "a@example.com"}, time.Hour)
	require.NoError(t, err)
	require.NoError(t, env.creds.Save(ctx, tok))

	sess, err := env.creds.Require(ctx)
	require.NoError(t, err)
	assert.Equal(t, tok, sess.Token)
	assert.Equal(t, "u1", sess.Claims.UserID)
	assert.Equal(t, "a@example.com", sess.Claims.Email)

	require.NoError(t, env.creds.Clear(ctx))
	sess, err = env.creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLoadOrCreateSecret_IsStable(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	first, err := LoadOrCreateSecret(ctx, env.db, env.repos)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := LoadOrCreateSecret(ctx, env.db, env.repos)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCredentialStore_DiscardKeepsTokenSavedAfterRead(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	stale, err := env.creds.Codec().Issue(token.Claims{UserID: "u1", Name: "A", Email: "a@example.com"}, -1)
	require.NoError(t, err)
	fresh, err := env.creds.Codec().Issue(token.Claims{UserID: "u2", Name: "B", Email: "b@example.com"}, time.Hour)
	require.NoError(t, err)

	// A login lands between reading the stale token and discarding it.
	require.NoError(t, env.creds.Save(ctx, fresh))
	require.NoError(t, env.creds.discard(ctx, []byte(stale)))

	sess, err := env.creds.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "u2", sess.Claims.UserID)
}
