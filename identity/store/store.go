// Package store persists provider tokens between process runs.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/ncobase/blogclient/structs"
)

// TokenStore persists the provider tokens of the signed-in user.
// Load returns nil, nil when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (*structs.Tokens, error)
	Save(ctx context.Context, tokens *structs.Tokens) error
	Clear(ctx context.Context) error
}

// Driver names accepted by New.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config selects and configures a store.
type Config struct {
	Driver string
	Path   string
	Redis  *RedisConfig
}

// RedisConfig configures the redis store.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Key      string
}

// New creates the store named by c.Driver. It returns a cleanup func that
// releases any connection it opened.
func New(c *Config) (TokenStore, func(), error) {
	if c == nil {
		return NewMemory(), func() {}, nil
	}
	switch strings.ToLower(c.Driver) {
	case "", DriverFile:
		s, err := NewFile(c.Path)
		return s, func() {}, err
	case DriverRedis:
		if c.Redis == nil || c.Redis.Addr == "" {
			return nil, nil, fmt.Errorf("redis store requires an address")
		}
		s := NewRedis(c.Redis)
		return s, func() { _ = s.Close() }, nil
	case DriverMemory:
		return NewMemory(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown token store driver %q", c.Driver)
	}
}
