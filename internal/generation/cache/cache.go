// Package cache wraps a ChatCompleter with a response cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"recipe-rag/internal/generation"
)

// Store keeps cached completions by key.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

// Completer serves repeated chat requests from a Store. Store errors are
// logged and bypassed.
type Completer struct {
	next   generation.ChatCompleter
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// New wraps next with store.
func New(next generation.ChatCompleter, store Store, ttl time.Duration, logger *zap.Logger) *Completer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Completer{next: next, store: store, ttl: ttl, logger: logger}
}

// Complete returns a cached response for req when present, otherwise
// forwards to the wrapped completer and caches a successful reply.
func (c *Completer) Complete(ctx context.Context, req generation.ChatRequest) (*generation.ChatResponse, error) {
	key := Key(req)
	if data, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("cache get failed", zap.Error(err))
	} else if ok {
		var resp generation.ChatResponse
		if err := json.Unmarshal([]byte(data), &resp); err == nil {
			c.logger.Debug("cache hit", zap.String("key", key))
			return &resp, nil
		}
		c.logger.Warn("cache entry unreadable", zap.String("key", key))
	}

	resp, err := c.next.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(resp); err == nil {
		if err := c.store.Set(ctx, key, string(data), c.ttl); err != nil {
			c.logger.Warn("cache set failed", zap.Error(err))
		}
	}
	return resp, nil
}

// Key derives a cache key from the model and messages of req.
func Key(req generation.ChatRequest) string {
	data, _ := json.Marshal(struct {
		Model    string               `json:"model"`
		Messages []generation.Message `json:"messages"`
	}{req.Model, req.Messages})
	sum := sha256.Sum256(data)
	return "recipe:chat:" + hex.EncodeToString(sum[:])
}
