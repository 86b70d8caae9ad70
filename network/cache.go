package network

import (
	"context"
	"fmt"
	"time"

	"github.com/bluele/gcache"
	"github.com/paulmach/orb"
	"github.com/ttpr0/isomap/graph"
)

//*******************************************
// cached provider
//*******************************************

var _ INetworkProvider = &CachedProvider{}

// Memoizes networks by location (rounded to 5 decimals) and distance, failures are not cached.
type CachedProvider struct {
	provider INetworkProvider
	cache    gcache.Cache
}

func NewCachedProvider(provider INetworkProvider, size int, expiration time.Duration) *CachedProvider {
	builder := gcache.New(size).LRU()
	if expiration > 0 {
		builder = builder.Expiration(expiration)
	}
	return &CachedProvider{
		provider: provider,
		cache:    builder.Build(),
	}
}

func (self *CachedProvider) GetWalkNetwork(ctx context.Context, center orb.Point, dist float64) (*graph.GraphBase, error) {
	key := fmt.Sprintf("%.5f:%.5f:%.1f", center[0], center[1], dist)
	if cached, err := self.cache.Get(key); err == nil {
		return cached.(*graph.GraphBase), nil
	}
	base, err := self.provider.GetWalkNetwork(ctx, center, dist)
	if err != nil {
		return nil, err
	}
	self.cache.Set(key, base)
	return base, nil
}
