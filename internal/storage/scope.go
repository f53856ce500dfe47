package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidProfile is returned for profile names that cannot be used as a
// key prefix.
var ErrInvalidProfile = errors.New("invalid profile name")

var profileValidate = validator.New()

// ValidateProfile checks that name is 1-64 printable ASCII characters
// without ':'.
func ValidateProfile(name string) error {
	if err := profileValidate.Var(name, "required,max=64,printascii,excludesall=:"); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidProfile, name)
	}
	return nil
}

// Scoped namespaces every key of an underlying Storage under "<profile>:".
// One backend can then hold the state of many browser profiles.
type Scoped struct {
	inner  Storage
	prefix string
}

// NewScoped wraps inner so that all keys live under profile.
func NewScoped(inner Storage, profile string) *Scoped {
	return &Scoped{inner: inner, prefix: profile + ":"}
}

// Profile returns the profile name this view is bound to.
func (s *Scoped) Profile() string {
	return strings.TrimSuffix(s.prefix, ":")
}

func (s *Scoped) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *Scoped) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.prefix+key)
}

func (s *Scoped) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.inner.Keys(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, s.prefix)
	}
	return keys, nil
}

func (s *Scoped) Watch(key string, fn WatchFunc) func() {
	if key != "" {
		return s.inner.Watch(s.prefix+key, func(k string) {
			fn(strings.TrimPrefix(k, s.prefix))
		})
	}
	return s.inner.Watch("", func(k string) {
		if strings.HasPrefix(k, s.prefix) {
			fn(strings.TrimPrefix(k, s.prefix))
		}
	})
}

func (s *Scoped) Stats(ctx context.Context) (*Stats, error) {
	return s.inner.Stats(ctx)
}

// Close is a no-op: the underlying backend is shared and owned by whoever
// opened it.
func (s *Scoped) Close() error { return nil }
