package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisStore implements Storage on Redis. Writes are announced on a pub/sub
// channel so that other arcade processes sharing the instance see them, the
// way a second browser tab sees a storage event.
type RedisStore struct {
	client  *redis.Client
	hub     *Hub
	channel string
	origin  string
	logger  zerolog.Logger

	pubsub *redis.PubSub
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRedisStore connects to addr, verifies the connection and starts
// listening for change announcements on channel.
func NewRedisStore(ctx context.Context, addr string, db int, channel string, logger zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return newRedisStore(ctx, client, channel, logger)
}

func newRedisStore(ctx context.Context, client *redis.Client, channel string, logger zerolog.Logger) (*RedisStore, error) {
	s := &RedisStore{
		client:  client,
		hub:     NewHub(),
		channel: channel,
		origin:  uuid.NewString(),
		logger:  logger,
	}

	s.pubsub = client.Subscribe(ctx, channel)
	// Wait for the subscription confirmation so no announcement is missed.
	if _, err := s.pubsub.Receive(ctx); err != nil {
		s.pubsub.Close()
		client.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", channel, err)
	}

	listenCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.listen(listenCtx)

	return s, nil
}

// listen forwards announcements from other processes into the local hub.
func (s *RedisStore) listen(ctx context.Context) {
	defer s.wg.Done()

	ch := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			origin, key, found := strings.Cut(msg.Payload, "\x00")
			if !found {
				s.logger.Debug().Str("payload", msg.Payload).Msg("ignoring malformed change announcement")
				continue
			}
			if origin == s.origin {
				continue
			}
			s.hub.Publish(key)
		}
	}
}

// announce notifies local watchers and other processes that key changed.
func (s *RedisStore) announce(ctx context.Context, key string) {
	s.hub.Publish(key)
	if err := s.client.Publish(ctx, s.channel, s.origin+"\x00"+key).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("publish change announcement")
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.announce(ctx, key)
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	if n > 0 {
		s.announce(ctx, key)
	}
	return nil
}

func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}
	iter := s.client.Scan(ctx, 0, globEscape(prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *RedisStore) Watch(key string, fn WatchFunc) func() {
	return s.hub.Watch(key, fn)
}

func (s *RedisStore) Stats(ctx context.Context) (*Stats, error) {
	n, err := s.client.DBSize(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("dbsize: %w", err)
	}
	return &Stats{Driver: "redis", TotalKeys: n}, nil
}

func (s *RedisStore) Close() error {
	s.cancel()
	err := s.pubsub.Close()
	s.wg.Wait()
	if cerr := s.client.Close(); err == nil {
		err = cerr
	}
	return err
}

// globEscape escapes the characters SCAN MATCH treats as wildcards.
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
