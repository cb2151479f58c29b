package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func revokedTokenKey(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", strings.TrimSpace(jti))
}

// RevokeToken 将 token 的 jti 加入黑名单，ttl 为剩余有效期
func (c *Cache) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if !c.Enabled() || strings.TrimSpace(jti) == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, c.buildKey(revokedTokenKey(jti)), 1, ttl).Err()
}

// IsTokenRevoked 判断 jti 是否已被吊销
func (c *Cache) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if !c.Enabled() || strings.TrimSpace(jti) == "" {
		return false, nil
	}
	err := c.client.Get(ctx, c.buildKey(revokedTokenKey(jti))).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
