// Package cache memoizes solver outcomes inside a running process.
//
// Entries live in memory only and vanish with the process. The HTTP server
// and the compare command share one cache so that repeating a request for
// the same matrix, algorithm and limits skips the search.
//
// Keys are built by a [Keyer] from the algorithm name, a hash of the matrix
// and the search limits:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.OutcomeKey("johnson", cache.MatrixHash(m), cache.OutcomeKeyOpts{})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    // decode data
//	}
package cache

import (
	"context"
	"time"
)

// TTLOutcome is how long a solver outcome stays cached.
const TTLOutcome = 10 * time.Minute

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// OutcomeKeyOpts are the run parameters that change a solver outcome.
type OutcomeKeyOpts struct {
	TimeLimit time.Duration `json:"time_limit,omitempty"`
	NodeLimit int           `json:"node_limit,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	OutcomeKey(algorithm, matrixHash string, opts OutcomeKeyOpts) string
}

// DefaultKeyer hashes every key component.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OutcomeKey returns "outcome:<sha256>" over the algorithm, matrix hash and opts.
func (DefaultKeyer) OutcomeKey(algorithm, matrixHash string, opts OutcomeKeyOpts) string {
	return outcomeKey(algorithm, matrixHash, opts)
}
