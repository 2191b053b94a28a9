package query

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is the read-side query cache. It is an availability optimization
// only: every value it holds is owned by the backend and can be refetched.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate drops every key with the given prefix. Writes call it with
	// the affected station's prefix so stale views refetch.
	Invalidate(ctx context.Context, prefix string) error
	Close() error
}

// Noop disables caching; every read goes to the backend.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Invalidate(context.Context, string) error                 { return nil }
func (Noop) Close() error                                             { return nil }

// GetJSON reads a cached value into out. A miss or decode failure reports
// false; a corrupt entry is not an error, just a miss.
func GetJSON(ctx context.Context, c Cache, key string, out interface{}) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON stores a value as JSON.
func SetJSON(ctx context.Context, c Cache, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}

// StationPrefix is the invalidation prefix for everything scoped to one
// station.
func StationPrefix(stationID string) string { return "station:" + stationID + ":" }

// Key builders for the station-scoped reads.
func PumpsKey(stationID string) string     { return StationPrefix(stationID) + "pumps" }
func PricesKey(stationID string) string    { return StationPrefix(stationID) + "prices" }
func CreditorsKey(stationID string) string { return StationPrefix(stationID) + "creditors" }
func LatestKey(stationID string) string    { return StationPrefix(stationID) + "latest" }
func StationsKey() string                  { return "stations" }
