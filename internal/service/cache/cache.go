package cache

import (
	"context"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Layered reads L1 then L2 and writes through both. A hit in L2 is copied into L1.
type Layered struct {
	l1    BytesCache
	l2    BytesCache
	l1TTL time.Duration
}

// NewLayered builds a two-level cache. l1TTL bounds how long L2 hits stay in L1.
func NewLayered(l1, l2 BytesCache, l1TTL time.Duration) *Layered {
	return &Layered{l1: l1, l2: l2, l1TTL: l1TTL}
}

func (c *Layered) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok, err := c.l1.GetBytes(ctx, key); err == nil && ok {
		return b, true, nil
	}
	b, ok, err := c.l2.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = c.l1.SetBytes(ctx, key, b, c.l1TTL)
	return b, true, nil
}

func (c *Layered) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// L1 is written even when L2 fails; the L2 error is still reported.
	l1TTL := ttl
	if c.l1TTL > 0 && (l1TTL <= 0 || c.l1TTL < l1TTL) {
		l1TTL = c.l1TTL
	}
	l1Err := c.l1.SetBytes(ctx, key, value, l1TTL)
	if err := c.l2.SetBytes(ctx, key, value, ttl); err != nil {
		return err
	}
	return l1Err
}
