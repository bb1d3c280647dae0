package classify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"snapfind/internal/domain"
	"snapfind/internal/kv"
	applog "snapfind/internal/log"
)

const cachePrefix = "labels:"

// Cached remembers label lists per image digest. Only labels are cached:
// products are still synthesized, with a new id, on every analysis.
type Cached struct {
	inner Resolver
	store kv.Store
}

func NewCached(inner Resolver, store kv.Store) *Cached {
	return &Cached{inner: inner, store: store}
}

func hashImage(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

func (c *Cached) Resolve(ctx context.Context, image []byte) ([]domain.Label, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	hash := hashImage(image)

	if c.store != nil {
		raw, ok, err := c.store.Get(cachePrefix + hash)
		switch {
		case err != nil:
			applog.Warn(nil, "classify.cache.read.fail", err, nil)
		case ok:
			var labels []domain.Label
			if err := json.Unmarshal([]byte(raw), &labels); err == nil {
				applog.Info(nil, "classify.cache.hit", map[string]any{"hash": hash[:16]})
				return labels, nil
			}
		}
	}

	labels, err := c.inner.Resolve(ctx, image)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		b, err := json.Marshal(labels)
		if err != nil {
			applog.Warn(nil, "classify.cache.write.fail", err, nil)
			return labels, nil
		}
		if err := c.store.Set(cachePrefix+hash, string(b)); err != nil {
			applog.Warn(nil, "classify.cache.write.fail", err, nil)
		}
	}
	return labels, nil
}
