package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tributestream/livestream-api/internal/core/ports"
)

const capabilityTTL = 5 * time.Minute

// CapabilityCache holds recent role/capability lookups so best-effort
// refetches do not hammer the CMS. Keys are derived from a hash of the token
// so raw bearer tokens never land in Redis.
type CapabilityCache struct {
	client *redis.Client
}

func NewCapabilityCache(client *redis.Client) *CapabilityCache {
	return &CapabilityCache{client: client}
}

type cachedCapabilities struct {
	UserID       int64           `json:"user_id"`
	Roles        []string        `json:"roles"`
	Capabilities map[string]bool `json:"capabilities"`
}

func (c *CapabilityCache) Get(ctx context.Context, token string) (*ports.Capabilities, bool, error) {
	raw, err := c.client.Get(ctx, c.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("capability cache get: %w", err)
	}

	var cc cachedCapabilities
	if err := json.Unmarshal(raw, &cc); err != nil {
		// A corrupt entry counts as a miss.
		return nil, false, nil
	}
	return &ports.Capabilities{
		UserID:       cc.UserID,
		Roles:        cc.Roles,
		Capabilities: cc.Capabilities,
	}, true, nil
}

func (c *CapabilityCache) Set(ctx context.Context, token string, caps *ports.Capabilities) error {
	raw, err := json.Marshal(cachedCapabilities{
		UserID:       caps.UserID,
		Roles:        caps.Roles,
		Capabilities: caps.Capabilities,
	})
	if err != nil {
		return fmt.Errorf("capability cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(token), raw, capabilityTTL).Err()
}

func (c *CapabilityCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "caps:" + hex.EncodeToString(sum[:16])
}
