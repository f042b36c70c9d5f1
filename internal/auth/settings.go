package auth

import (
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/cryptox"
)

// Settings are the configurable parts of a Store, as read from config.
type Settings struct {
	Latency      time.Duration
	TokenFormat  string
	SecretKey    string
	PasswordMode string
}

// Options turns s into Store options.
func (s Settings) Options() ([]Option, error) {
	hasher, err := cryptox.NewPasswordHasher(s.PasswordMode)
	if err != nil {
		return nil, err
	}
	tokens, err := NewTokenIssuer(s.TokenFormat, []byte(s.SecretKey))
	if err != nil {
		return nil, err
	}
	return []Option{WithLatency(s.Latency), WithPasswordHasher(hasher), WithTokenIssuer(tokens)}, nil
}
