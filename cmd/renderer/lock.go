package main

import (
	"context"
	"time"

	"github.com/noelukwa/devcard/internal/card"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func lockKey(login string) string {
	return "lock:card:" + card.CardLogin(login)
}

func (l *redisLocker) Acquire(ctx context.Context, login, token string) (bool, error) {
	return l.client.SetNX(ctx, lockKey(login), token, l.ttl).Result()
}

func (l *redisLocker) Release(ctx context.Context, login, token string) error {
	return releaseScript.Run(ctx, l.client, []string{lockKey(login)}, token).Err()
}
