package cacheversion

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	versionKey = "appointments:version"
	versionTTL = 30 * 24 * time.Hour
)

// Counter é o contador monotônico global que invalida caches de listagem:
// toda mutação de agendamento incrementa a versão e muda a chave de cache.
type Counter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Counter {
	return &Counter{rdb: rdb}
}

// Current devolve a versão vigente; sem chave (ou sem redis) vale 0,
// assim o primeiro Bump já muda a chave de cache.
func (c *Counter) Current(ctx context.Context) int64 {
	v, err := c.rdb.Get(ctx, versionKey).Int64()
	if err != nil {
		return 0
	}
	return v
}

// Bump incrementa atomicamente e renova o TTL. Falha de redis nunca
// derruba a operação que acabou de gravar no banco.
func (c *Counter) Bump(ctx context.Context) {
	if err := c.rdb.Incr(ctx, versionKey).Err(); err != nil {
		log.Println("cacheversion: bump failed:", err)
		return
	}

	if err := c.rdb.Expire(ctx, versionKey, versionTTL).Err(); err != nil {
		log.Println("cacheversion: expire failed:", err)
	}
}
