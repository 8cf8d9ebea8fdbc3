// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"time"

	"github.com/olegiv/featreq-go/internal/cache"
)

// CacheStore adapts a cache.Cache to the scs.Store interface, so session
// data can live in the memory cache (tests, single-node development) or
// Redis (distributed deployments) interchangeably.
type CacheStore struct {
	cache cache.Cache
}

// NewCacheStore creates a session store backed by the given cache.
func NewCacheStore(c cache.Cache) *CacheStore {
	return &CacheStore{cache: c}
}

// Find returns the data for a session token. A missing or expired token is
// reported as not found, never as an error.
func (s *CacheStore) Find(token string) ([]byte, bool, error) {
	b, err := s.cache.Get(context.Background(), token)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Commit stores session data against a token until the expiry time.
func (s *CacheStore) Commit(token string, b []byte, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return s.Delete(token)
	}
	return s.cache.Set(context.Background(), token, b, ttl)
}

// Delete removes a session token.
func (s *CacheStore) Delete(token string) error {
	return s.cache.Delete(context.Background(), token)
}
