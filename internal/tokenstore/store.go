// Package tokenstore persists the bearer token that backs a client session.
//
// Every implementation holds a single slot addressed by a fixed key, so a
// store is either empty or holds exactly one token.
package tokenstore

import (
	"context"
	"errors"
)

// Key is the fixed slot name the token is persisted under.
const Key = "token"

// ErrNoToken is returned by Load when nothing is persisted.
var ErrNoToken = errors.New("no token stored")

type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
