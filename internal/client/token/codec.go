// Package token issues and decodes session credentials.
//
// Two codecs share the Codec interface: JWTCodec signs tokens with HS256 and
// is the default; PlainCodec writes unsigned base64 JSON and exists for
// compatibility with tokens produced by older clients. Neither codec checks
// expiry during Decode; callers use Claims.IsExpired.
package token

import (
	"fmt"
	"time"
)

// Claims is the decoded content of a session credential.
type Claims struct {
	UserID    string
	Name      string
	Email     string
	ExpiresAt time.Time
}

// IsExpired reports whether the credential's expiry lies before now.
func (c *Claims) IsExpired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

type Codec interface {
	// Issue encodes claims with ExpiresAt set to now+ttl.
	Issue(claims Claims, ttl time.Duration) (string, error)
	// Decode fails with common.ErrInvalidToken on malformed input.
	Decode(token string) (*Claims, error)
}

// Formats accepted by New.
const (
	FormatJWT   = "jwt"
	FormatPlain = "plain"
)

// New returns the codec for format. secret is only used by the JWT codec.
func New(format string, secret []byte, now func() time.Time) (Codec, error) {
	switch format {
	case "", FormatJWT:
		return NewJWTCodec(secret, now), nil
	case FormatPlain:
		return NewPlainCodec(now), nil
	default:
		return nil, fmt.Errorf("unknown token format %q", format)
	}
}
