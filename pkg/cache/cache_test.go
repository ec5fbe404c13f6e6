package cache

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/matzehuels/flowshop/pkg/flowshop"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	mock := clock.NewMock()
	c := NewMemoryCache(4, mock)
	defer c.Close()

	value := []byte("value")
	if err := c.Set(ctx, "key", value, time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	value[0] = 'X'

	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want a copy of the stored value", data)
	}

	// Expires after ttl
	mock.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("entry should expire after its ttl")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, expired entry should be dropped on Get", c.Len())
	}

	// Zero ttl never expires
	_ = c.Set(ctx, "forever", []byte("x"), 0)
	mock.Add(24 * time.Hour)
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}

	if err := c.Delete(ctx, "forever"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); hit {
		t.Error("deleted entry should miss")
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	mock := clock.NewMock()
	c := NewMemoryCache(3, mock)

	_ = c.Set(ctx, "a", []byte("a"), 3*time.Minute)
	_ = c.Set(ctx, "b", []byte("b"), time.Minute)
	_ = c.Set(ctx, "c", []byte("c"), 0)
	_ = c.Set(ctx, "d", []byte("d"), 2*time.Minute)

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("entry closest to expiry should be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("entry %q should survive eviction", k)
		}
	}

	// Overwriting an existing key never evicts
	_ = c.Set(ctx, "a", []byte("a2"), time.Hour)
	if c.Len() != 3 {
		t.Errorf("Len() = %d after overwrite, want 3", c.Len())
	}
}

func TestMemoryCacheConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0, nil)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i*100+j)%50)
				_ = c.Set(ctx, key, []byte(key), time.Minute)
				_, _, _ = c.Get(ctx, key)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	if c.Len() != 50 {
		t.Errorf("Len() = %d, want 50", c.Len())
	}
}

func TestMatrixHash(t *testing.T) {
	base := flowshop.Matrix{{1, 2}, {3, 4}}
	h := MatrixHash(base)
	if len(h) != 64 {
		t.Errorf("MatrixHash length = %d, want 64", len(h))
	}
	if h != MatrixHash(flowshop.Matrix{{1, 2}, {3, 4}}) {
		t.Error("MatrixHash should be deterministic")
	}

	tests := []struct {
		name string
		m    flowshop.Matrix
	}{
		{"different value", flowshop.Matrix{{1, 2}, {3, 5}}},
		{"swapped jobs", flowshop.Matrix{{3, 4}, {1, 2}}},
		{"transposed", flowshop.Matrix{{1, 3}, {2, 4}}},
		{"same values, other layout", flowshop.Matrix{{1}, {2, 3, 4}}},
		{"extra job", flowshop.Matrix{{1, 2}, {3, 4}, {0, 0}}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if MatrixHash(tt.m) == h {
				t.Errorf("MatrixHash(%v) collides with MatrixHash(%v)", tt.m, base)
			}
		})
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	matrix := MatrixHash(flowshop.Matrix{{1, 2}, {3, 4}})

	k1 := k.OutcomeKey("johnson", matrix, OutcomeKeyOpts{})
	if !strings.HasPrefix(k1, "outcome:") {
		t.Errorf("OutcomeKey unexpected: %s", k1)
	}
	if k1 != k.OutcomeKey("johnson", matrix, OutcomeKeyOpts{}) {
		t.Error("OutcomeKey should be deterministic")
	}

	// Every component changes the key
	others := []string{
		k.OutcomeKey("bnb", matrix, OutcomeKeyOpts{}),
		k.OutcomeKey("johnson", MatrixHash(flowshop.Matrix{{1, 2}}), OutcomeKeyOpts{}),
		k.OutcomeKey("johnson", matrix, OutcomeKeyOpts{NodeLimit: 10}),
		k.OutcomeKey("johnson", matrix, OutcomeKeyOpts{TimeLimit: time.Second}),
	}
	for _, o := range others {
		if o == k1 {
			t.Errorf("different inputs produced the same key %s", o)
		}
	}
}
