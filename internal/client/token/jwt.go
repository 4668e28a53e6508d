package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// jwtClaims is the wire form: registered claims plus the display fields.
type jwtClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

type JWTCodec struct {
	secret []byte
	now    func() time.Time
}

func NewJWTCodec(secret []byte, now func() time.Time) *JWTCodec {
	if now == nil {
		now = time.Now
	}
	return &JWTCodec{secret: secret, now: now}
}

func (c *JWTCodec) Issue(claims Claims, ttl time.Duration) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("jwt: empty signing secret")
	}

	issued := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		},
		Name:  claims.Name,
		Email: claims.Email,
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return s, nil
}

// Decode verifies the signature and algorithm only. Time-based claims are
// not validated here so an expired token still decodes.
func (c *JWTCodec) Decode(tokenString string) (*Claims, error) {
	claims := &jwtClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, common.ErrInvalidToken
	}

	return &Claims{
		UserID:    claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
