package insights

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store abstracts the insights cache for tests.
type Store interface {
	Get(ctx context.Context, company, role string) (*Entry, error)
	Set(ctx context.Context, entry Entry) error
}

// Cache is the Redis-backed Store. Keys are exact strings; "Google" and
// "google" are distinct entries. A zero TTL keeps entries until the next
// refresh overwrites them.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(company, role string) string {
	return strings.Join([]string{"insights", company, role}, ":")
}

// Get returns the cached entry, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, company, role string) (*Entry, error) {
	data, err := c.client.Get(ctx, c.key(company, role)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Set stores the entry, overwriting any previous value for the key.
func (c *Cache) Set(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(entry.CompanyName, entry.RoleLevel), data, c.ttl).Err()
}
