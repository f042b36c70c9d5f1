package kv

import (
	"context"
	"fmt"
	"strings"
)

// Namespaced prefixes every key with "<ns>/" so several profiles can share
// one backend.
type Namespaced struct {
	inner  Storage
	prefix string
}

// ValidateNamespace accepts "" and names without a "/", so one namespace
// is never a key prefix of another.
func ValidateNamespace(ns string) error {
	if strings.Contains(ns, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, ns)
	}
	return nil
}

// WithNamespace wraps s. Callers validate ns with ValidateNamespace. An empty ns returns s unchanged.
func WithNamespace(s Storage, ns string) Storage {
	if ns == "" {
		return s
	}
	return &Namespaced{inner: s, prefix: ns + "/"}
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}
