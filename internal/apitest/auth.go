package apitest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaekwang-park/taskhub/internal/model"
)

const userKey = "user"

// IssueToken signs an HS256 bearer token for u that expires after ttl.
func (b *Backend) IssueToken(u model.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.Username,
		"id":   u.ID,
		"role": string(u.Role),
		"exp":  jwt.NewNumericDate(b.now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(b.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (b *Backend) authenticate(username, password string) (model.User, error) {
	b.mu.Lock()
	var found *account
	for _, a := range b.users {
		if a.user.Username == username {
			found = a
			break
		}
	}
	b.mu.Unlock()

	if found == nil {
		return model.User{}, errUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(found.hash, []byte(password)); err != nil {
		return model.User{}, errUnauthorized
	}
	return found.user, nil
}

func (b *Backend) parseToken(raw string) (int64, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		return b.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(b.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, errUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errUnauthorized
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, errUnauthorized
	}
	return int64(id), nil
}

// requireUser resolves the bearer token to an active stored user.
func (b *Backend) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return writeError(c, errUnauthorized)
		}

		id, err := b.parseToken(raw)
		if err != nil {
			return writeError(c, err)
		}

		u, ok := b.User(id)
		if !ok || !u.IsActive {
			return writeError(c, errUnauthorized)
		}

		c.Set(userKey, u)
		return next(c)
	}
}

// requireAdmin answers non-admins the way the real service does: 401, not 403.
func (b *Backend) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return b.requireUser(func(c echo.Context) error {
		if !currentUser(c).IsAdmin() {
			return writeError(c, errUnauthorized)
		}
		return next(c)
	})
}

func currentUser(c echo.Context) model.User {
	u, _ := c.Get(userKey).(model.User)
	return u
}

func (b *Backend) changePassword(id int64, current, next string) error {
	b.mu.Lock()
	a, ok := b.users[id]
	b.mu.Unlock()
	if !ok {
		return errNotFound
	}

	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(current)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return errWrongPassword
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), b.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	b.mu.Lock()
	a.hash = hash
	b.mu.Unlock()
	return nil
}
