package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ShiblySohaib/wfmarket/internal/domain/models"
	drepo "github.com/ShiblySohaib/wfmarket/internal/domain/repository"
	"github.com/ShiblySohaib/wfmarket/pkg/cache"
)

// ProgressCache implements ProgressStore on top of a cache backend. Records
// are stored as JSON under a per-session key with a fixed TTL, so abandoned
// sessions expire on their own regardless of run state.
type ProgressCache struct {
	cache cache.Service
	ttl   time.Duration
}

// NewProgressCache creates a progress store with the given retention window.
func NewProgressCache(c cache.Service, ttl time.Duration) *ProgressCache {
	return &ProgressCache{cache: c, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Put replaces the whole record for the session.
func (p *ProgressCache) Put(ctx context.Context, sessionID string, rec *models.ProgressRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal progress record: %w", err)
	}
	if err := p.cache.Set(ctx, sessionKey(sessionID), b, p.ttl); err != nil {
		return fmt.Errorf("store progress record: %w", err)
	}
	return nil
}

// Get returns the current record, or ErrSessionNotFound for unknown or
// expired sessions.
func (p *ProgressCache) Get(ctx context.Context, sessionID string) (*models.ProgressRecord, error) {
	b, err := p.cache.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, drepo.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load progress record: %w", err)
	}

	var rec models.ProgressRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal progress record: %w", err)
	}
	return &rec, nil
}

// Delete removes the session record.
func (p *ProgressCache) Delete(ctx context.Context, sessionID string) error {
	return p.cache.Delete(ctx, sessionKey(sessionID))
}
