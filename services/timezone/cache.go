package timezone

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookable/models"
	"bookable/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedResolver wraps a Resolver with a Redis cache so repeated lookups for
// the same (coordinate, instant) pair don't hit the external API. Cache
// failures fall through to the inner resolver.
type CachedResolver struct {
	Inner Resolver
	Cache *redis.Client
	TTL   time.Duration
}

// NewCachedResolver wraps inner with the given cache client.
func NewCachedResolver(inner Resolver, cache *redis.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{Inner: inner, Cache: cache, TTL: ttl}
}

func (r *CachedResolver) LookupOffset(ctx context.Context, loc models.GeoPoint, unixTime int64) (ZoneOffset, error) {
	key := fmt.Sprintf("tz:%.4f:%.4f:%d", loc.Lat, loc.Lng, unixTime)

	if data, err := r.Cache.Get(ctx, key).Result(); err == nil {
		var off ZoneOffset
		if err := json.Unmarshal([]byte(data), &off); err == nil {
			return off, nil
		}
	}

	off, err := r.Inner.LookupOffset(ctx, loc, unixTime)
	if err != nil {
		return ZoneOffset{}, err
	}

	if data, err := json.Marshal(off); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL).Err(); err != nil {
			utils.GetLogger().Debug("timezone cache set failed", zap.Error(err))
		}
	}
	return off, nil
}

func (r *CachedResolver) CoordinateForZone(ctx context.Context, iana string) (models.GeoPoint, error) {
	return r.Inner.CoordinateForZone(ctx, iana)
}
