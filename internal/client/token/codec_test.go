package token

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = Claims{UserID: "u-1", Name: "Alice", Email: "alice@example.com"}

func codecs(now func() time.Time) map[string]Codec {
	return map[string]Codec{
		FormatJWT:   NewJWTCodec([]byte("super-secret"), now),
		FormatPlain: NewPlainCodec(now),
	}
}

func TestIssueDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, c := range codecs(nil) {
		t.Run(name, func(t *testing.T) {
			tok, err := c.Issue(alice, time.Hour)
			require.NoError(t, err)

			got, err := c.Decode(tok)
			require.NoError(t, err)
			assert.Equal(t, alice.UserID, got.UserID)
			assert.Equal(t, alice.Name, got.Name)
			assert.Equal(t, alice.Email, got.Email)
			assert.False(t, got.IsExpired(time.Now()))
			assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt, 2*time.Second)
		})
	}
}

func TestNegativeTTL_DecodesButIsExpired(t *testing.T) {
	t.Parallel()

	for name, c := range codecs(nil) {
		t.Run(name, func(t *testing.T) {
			tok, err := c.Issue(alice, -time.Millisecond)
			require.NoError(t, err)

			got, err := c.Decode(tok)
			require.NoError(t, err)
			assert.True(t, got.IsExpired(time.Now()))
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	for name, c := range codecs(nil) {
		t.Run(name, func(t *testing.T) {
			for _, in := range []string{"", "garbage", "!!!", base64.StdEncoding.EncodeToString([]byte("{}"))} {
				_, err := c.Decode(in)
				assert.ErrorIs(t, err, common.ErrInvalidToken, "input %q", in)
			}
		})
	}
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTCodec([]byte("right"), nil).Issue(alice, time.Hour)
	require.NoError(t, err)

	_, err = NewJWTCodec([]byte("wrong"), nil).Decode(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWT_OtherAlgorithmRejected(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := tok.SignedString([]byte("super-secret"))
	require.NoError(t, err)

	_, err = NewJWTCodec([]byte("super-secret"), nil).Decode(s)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestJWT_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTCodec(nil, nil).Issue(alice, time.Hour)
	require.Error(t, err)
}

func TestClaims_IsExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := &Claims{ExpiresAt: now}

	assert.False(t, c.IsExpired(now))
	assert.True(t, c.IsExpired(now.Add(time.Nanosecond)))
	assert.False(t, c.IsExpired(now.Add(-time.Second)))
}

func TestPlain_InjectedClock(t *testing.T) {
	t.Parallel()

	fixed := time.UnixMilli(1_000_000)
	c := NewPlainCodec(func() time.Time { return fixed })

	tok, err := c.Issue(alice, time.Second)
	require.NoError(t, err)

	got, err := c.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(1_001_000), got.ExpiresAt.UnixMilli())
}

func TestNew(t *testing.T) {
	t.Parallel()

	c, err := New("", []byte("s"), nil)
	require.NoError(t, err)
	assert.IsType(t, &JWTCodec{}, c)

	c, err = New(FormatPlain, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &PlainCodec{}, c)

	_, err = New("rot13", nil, nil)
	require.Error(t, err)
}
