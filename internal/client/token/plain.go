package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/common"
)

// plainPayload matches the legacy unsigned token: exp is epoch milliseconds.
type plainPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
}

// PlainCodec produces unsigned tokens. Anyone with storage access can forge
// one, so the format only suits local single-user setups.
type PlainCodec struct {
	now func() time.Time
}

func NewPlainCodec(now func() time.Time) *PlainCodec {
	if now == nil {
		now = time.Now
	}
	return &PlainCodec{now: now}
}

func (c *PlainCodec) Issue(claims Claims, ttl time.Duration) (string, error) {
	b, err := json.Marshal(plainPayload{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
		Exp:   c.now().Add(ttl).UnixMilli(),
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (c *PlainCodec) Decode(token string) (*Claims, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	var p plainPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if p.ID == "" || p.Exp == 0 {
		return nil, common.ErrInvalidToken
	}

	return &Claims{
		UserID:    p.ID,
		Name:      p.Name,
		Email:     p.Email,
		ExpiresAt: time.UnixMilli(p.Exp),
	}, nil
}
