package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	fylogger "github.com/FyersDev/trading-logger-go"
)

// Cache is the subset of memorydb.RedisClient the translator needs.
type Cache interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// CachedTranslator memoizes translations. Cache failures never fail a call.
type CachedTranslator struct {
	next       Translator
	cache      Cache
	ttl        time.Duration
	sourceLang string
	targetLang string
}

// NewCachedTranslator wraps next. sourceLang is the default next applies to
// calls without a source language; it is used to key those calls.
func NewCachedTranslator(next Translator, cache Cache, ttl time.Duration, sourceLang, targetLang string) *CachedTranslator {
	return &CachedTranslator{
		next:       next,
		cache:      cache,
		ttl:        ttl,
		sourceLang: sourceLang,
		targetLang: targetLang,
	}
}

// CacheKey identifies a translation by source language, target language and text.
func CacheKey(sourceLang, targetLang, text string) string {
	sum := sha256.Sum256([]byte(sourceLang + "\x00" + targetLang + "\x00" + text))
	return "translation:" + hex.EncodeToString(sum[:])
}

func (t *CachedTranslator) Translate(ctx context.Context, text, sourceLang string) (string, error) {
	if text == "" {
		return "", nil
	}
	if strings.TrimSpace(sourceLang) == "" {
		sourceLang = t.sourceLang
	}
	key := CacheKey(sourceLang, t.targetLang, text)

	cached, ok, err := t.cache.Lookup(ctx, key)
	if err != nil {
		fylogger.ErrorLog(ctx, "Translation cache lookup failed", err, map[string]interface{}{"key": key})
	} else if ok {
		return cached, nil
	}

	translated, err := t.next.Translate(ctx, text, sourceLang)
	if err != nil {
		return "", err
	}
	if err := t.cache.Set(ctx, key, translated, t.ttl); err != nil {
		fylogger.ErrorLog(ctx, "Translation cache store failed", err, map[string]interface{}{"key": key})
	}
	return translated, nil
}
