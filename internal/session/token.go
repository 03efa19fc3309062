package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jaekwang-park/taskhub/internal/model"
)

// Claims is what the client can learn from a bearer token without the
// server's key. None of it is trusted for authorization; it only lets the
// store skip a round trip for a token that has plainly expired.
type Claims struct {
	Subject   string
	UserID    int64
	Role      model.Role
	ExpiresAt time.Time
}

// Expired reports whether the token carried an exp claim that is not after now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ParseClaims decodes the token payload without verifying its signature.
func ParseClaims(token string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	mc := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("failed to parse token: %w", err)
	}

	var c Claims
	c.Subject, _ = mc.GetSubject()

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}

	switch id := mc["id"].(type) {
	case float64:
		c.UserID = int64(id)
	case string:
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			c.UserID = n
		}
	}

	if role, ok := mc["role"].(string); ok && model.Role(role).IsValid() {
		c.Role = model.Role(role)
	}

	return c, nil
}
