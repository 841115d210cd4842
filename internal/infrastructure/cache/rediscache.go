package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/api/metrics"
	"github.com/aexy/console-state/internal/core/ports"
)

const (
	entryPrefix = "cq:"
	genPrefix   = "cqg:"

	// registryKey tracks every logical key that has a generation, so Clear
	// can sweep them without a KEYS scan over the whole keyspace.
	registryKey = "cqk"

	redisOpTimeout = 2 * time.Second
)

// beginScript registers the key and materializes its generation before
// returning it, so a Clear issued while the fetch is in flight advances a
// counter that actually exists.
var beginScript = redis.NewScript(`
redis.call('SADD', KEYS[1], ARGV[1])
redis.call('SETNX', KEYS[2], '0')
return redis.call('GET', KEYS[2])
`)

// completeScript stores a fetch result only when the key's generation is
// still the one the fetch observed before going to the network. The first
// accepted completion advances the generation, fencing any other in-flight
// fetch that observed the same one.
var completeScript = redis.NewScript(`
if tonumber(redis.call('GET', KEYS[1]) or '0') == tonumber(ARGV[1]) then
  redis.call('INCR', KEYS[1])
  redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
  return 1
end
return 0
`)

// clearScript advances every registered generation and drops every entry,
// so in-flight fetches started before the clear can not repopulate the
// cache.
var clearScript = redis.NewScript(`
for _, k in ipairs(redis.call('SMEMBERS', KEYS[1])) do
  redis.call('INCR', ARGV[1] .. k)
  redis.call('DEL', ARGV[2] .. k)
end
return 1
`)

// Redis is the query cache for shared sidecar deployments. Failures
// degrade to cache misses; the cache is advisory by contract.
type Redis struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedis(client *redis.Client, log zerolog.Logger) *Redis {
	return &Redis{client: client, log: log}
}

func (r *Redis) Get(key ports.CacheKey) ([]byte, bool) {
	ctx, cancel := r.opCtx()
	defer cancel()

	b, err := r.client.Get(ctx, entryPrefix+string(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn().Err(err).Str("key", string(key)).Msg("cache get failed")
		}
		return nil, false
	}
	return b, true
}

func (r *Redis) Begin(key ports.CacheKey) uint64 {
	ctx, cancel := r.opCtx()
	defer cancel()

	keys := []string{registryKey, genPrefix + string(key)}
	gen, err := beginScript.Run(ctx, r.client, keys, string(key)).Uint64()
	if err != nil {
		r.log.Warn().Err(err).Str("key", string(key)).Msg("cache generation read failed")
	}
	return gen
}

func (r *Redis) Complete(key ports.CacheKey, gen uint64, value []byte, ttl time.Duration) bool {
	ctx, cancel := r.opCtx()
	defer cancel()

	keys := []string{genPrefix + string(key), entryPrefix + string(key)}
	n, err := completeScript.Run(ctx, r.client, keys, gen, value, ttl.Milliseconds()).Int()
	if err != nil {
		r.log.Warn().Err(err).Str("key", string(key)).Msg("cache complete failed")
		return false
	}
	if n == 0 {
		metrics.CacheStaleRejectionsTotal.Inc()
		return false
	}
	return true
}

func (r *Redis) Invalidate(key ports.CacheKey) {
	ctx, cancel := r.opCtx()
	defer cancel()

	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, registryKey, string(key))
	pipe.Del(ctx, entryPrefix+string(key))
	pipe.Incr(ctx, genPrefix+string(key))
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Warn().Err(err).Str("key", string(key)).Msg("cache invalidate failed")
	}
}

func (r *Redis) Clear() {
	ctx, cancel := r.opCtx()
	defer cancel()

	if err := clearScript.Run(ctx, r.client, []string{registryKey}, genPrefix, entryPrefix).Err(); err != nil {
		r.log.Warn().Err(err).Msg("cache clear failed")
	}
}

func (r *Redis) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisOpTimeout)
}
