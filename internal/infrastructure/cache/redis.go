package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
)

// ruleTTL vida de una entrada de regla en cache. La invalidación explícita al
// crear reglas cubre el caso normal; el TTL es el tope para entradas huérfanas.
const ruleTTL = 5 * time.Minute

// RedisRuleCache cache de lectura de reglas de descuento sobre Redis.
// Implementa usecase.ResolutionCache. Las claves son discount:tag:{tag} con el
// tag en minúsculas, para alinear con la resolución insensible a mayúsculas.
type RedisRuleCache struct {
	client *redis.Client
}

// NewRedisRuleCache construye el cache sobre un cliente ya conectado.
func NewRedisRuleCache(client *redis.Client) *RedisRuleCache {
	return &RedisRuleCache{client: client}
}

func key(tag string) string {
	return "discount:tag:" + strings.ToLower(strings.TrimSpace(tag))
}

// GetRule devuelve la regla cacheada para el tag. El segundo valor indica si
// hubo entrada; una entrada "sin regla" (JSON null) también cuenta como hit.
func (c *RedisRuleCache) GetRule(ctx context.Context, tag string) (*entity.DiscountRule, bool, error) {
	raw, err := c.client.Get(ctx, key(tag)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var rule *entity.DiscountRule
	if err := json.Unmarshal(raw, &rule); err != nil {
		return nil, false, err
	}
	return rule, true, nil
}

// SetRule guarda la regla (o su ausencia) para el tag.
func (c *RedisRuleCache) SetRule(ctx context.Context, tag string, rule *entity.DiscountRule) error {
	raw, err := json.Marshal(rule)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(tag), raw, ruleTTL).Err()
}

// Invalidate borra las entradas de los tags dados.
func (c *RedisRuleCache) Invalidate(ctx context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for _, t := range tags {
		keys = append(keys, key(t))
	}
	return c.client.Del(ctx, keys...).Err()
}
