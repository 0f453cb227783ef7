package redis

import (
	"context"
	"time"

	"ecovision/internal/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// Client is a typed wrapper above a redis connection, with async saver
type Client[V any] struct {
	rdb       *redis.Client
	marshal   func(V) (string, error)
	unmarshal func(string) (V, error)
	saveChan  chan redisEntity[V]
	ttl       time.Duration
	ctx       context.Context
}

type redisEntity[V any] struct {
	key   string
	value V
}

// Connect opens a redis connection pool
func Connect(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewClient[V any](ctx context.Context,
	rdb *redis.Client,
	marshal func(V) (string, error),
	unmarshal func(string) (V, error),
	chanSize int,
	ttl time.Duration) *Client[V] {

	client := &Client[V]{
		rdb:       rdb,
		marshal:   marshal,
		unmarshal: unmarshal,
		saveChan:  make(chan redisEntity[V], chanSize),
		ttl:       ttl,
		ctx:       ctx,
	}

	go client.runUpdater(ctx)

	return client
}

func (c *Client[V]) Set(ctx context.Context, key string, value V, expiration time.Duration) error {
	strValue, err := c.marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, strValue, expiration).Err()
}

func (c *Client[V]) Get(ctx context.Context, key string) (V, error) {
	strValue, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		var zero V
		return zero, err
	}
	return c.unmarshal(strValue)
}

// Update queues values to be saved with the client ttl
func (c *Client[V]) Update(keys []string, values []V) {
	for i := range values {
		entity := redisEntity[V]{key: keys[i], value: values[i]}
		select {
		case c.saveChan <- entity:
		default:
			go func(e redisEntity[V]) {
				select {
				case c.saveChan <- e:
				case <-c.ctx.Done():
				}
			}(entity)
		}
	}
}

func (c *Client[V]) BatchGet(ctx context.Context, keys []string) ([]V, []string, error) {
	results, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, err
	}

	res := make([]V, 0, len(results))
	notFound := make([]string, 0)
	for i, r := range results {
		str, ok := r.(string)
		if !ok {
			notFound = append(notFound, keys[i])
			continue
		}
		val, err := c.unmarshal(str)
		if err != nil {
			log.Warn().Err(err).Str("key", keys[i]).Msg("couldn't unmarshal a cached value")
			notFound = append(notFound, keys[i])
			continue
		}
		res = append(res, val)
	}
	metrics.RecordCacheLookup("redis", len(res), len(notFound))
	return res, notFound, nil
}

func (c *Client[V]) runUpdater(ctx context.Context) {
	for {
		select {
		case entity, ok := <-c.saveChan:
			if !ok {
				return
			}
			if err := c.Set(ctx, entity.key, entity.value, c.ttl); err != nil {
				log.Error().Err(err).Str("key", entity.key).Msg("couldn't save to redis")
			}
		case <-ctx.Done():
			return
		}
	}
}
