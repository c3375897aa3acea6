package ml

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedModel memoizes predictions of a deterministic model by record key.
type CachedModel struct {
	next  ModelProvider
	cache *lru.Cache[string, Prediction]
}

func NewCachedModel(next ModelProvider, size int) (*CachedModel, error) {
	cache, err := lru.New[string, Prediction](size)
	if err != nil {
		return nil, fmt.Errorf("create prediction cache: %w", err)
	}
	return &CachedModel{next: next, cache: cache}, nil
}

func (c *CachedModel) Predict(ctx context.Context, record CustomerRecord) (Prediction, error) {
	key := record.Key()
	if prediction, ok := c.cache.Get(key); ok {
		return prediction, nil
	}
	prediction, err := c.next.Predict(ctx, record)
	if err != nil {
		return Prediction{}, err
	}
	c.cache.Add(key, prediction)
	return prediction, nil
}

// Type reports the wrapped model's type when it has one.
func (c *CachedModel) Type() string {
	if typed, ok := c.next.(interface{ Type() string }); ok {
		return typed.Type()
	}
	return ""
}

func (c *CachedModel) Len() int {
	return c.cache.Len()
}
