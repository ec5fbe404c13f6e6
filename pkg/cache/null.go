package cache

import (
	"context"
	"time"
)

// NullCache turns memoization off. The solver Runner falls back to it when
// constructed without a cache, and one-shot CLI commands use it because a
// single solve has nothing to reuse. Every lookup misses, so each Run goes
// straight to the algorithm.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
