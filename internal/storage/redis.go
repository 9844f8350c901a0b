package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/frzip09/absolute-time/internal/logger"
	"github.com/frzip09/absolute-time/internal/settings"
	"github.com/frzip09/absolute-time/internal/utils"
)

// RedisBackend persists each setting as one field of a redis hash and fans
// changes out over pub/sub, so every process (and every page context behind
// the websocket feed) sees a save from any of them.
type RedisBackend struct {
	client *redis.Client
	logger logger.Logger
}

func NewRedisBackend(client *redis.Client, log logger.Logger) *RedisBackend {
	return &RedisBackend{
		client: client,
		logger: log,
	}
}

func (r *RedisBackend) Load(ctx context.Context) (settings.Patch, error) {
	fields, err := r.client.HGetAll(ctx, KeySettings).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings hash: %w", err)
	}

	// String values are fine as-is: coercion parses booleans and validates
	// enum members either way.
	raw := make(settings.Patch, len(fields))
	for k, v := range fields {
		raw[k] = v
	}
	return raw, nil
}

func (r *RedisBackend) Save(ctx context.Context, s settings.Settings) error {
	record := settings.Record(s)

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode settings event: %w", err)
	}

	pipe := r.client.Pipeline()
	for field, value := range record {
		pipe.HSet(ctx, KeySettings, field, fmt.Sprint(value))
	}
	pipe.Publish(ctx, ChannelSettingsEvents, payload)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (r *RedisBackend) Watch(ctx context.Context) (<-chan settings.Patch, error) {
	sub := r.client.Subscribe(ctx, ChannelSettingsEvents)

	// Force the subscription before we claim to be watching.
	if _, err := sub.Receive(ctx); err != nil {
		utils.Close(sub)
		return nil, fmt.Errorf("failed to subscribe to settings events: %w", err)
	}

	out := make(chan settings.Patch, 8)
	go func() {
		defer close(out)
		defer utils.Close(sub)

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var patch settings.Patch
				if err := json.Unmarshal([]byte(msg.Payload), &patch); err != nil {
					r.logger.Warn("dropping malformed settings event",
						logger.Error(err))
					continue
				}
				select {
				case out <- patch:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Close is a no-op: the redis client's lifecycle belongs to the app.
func (r *RedisBackend) Close() error {
	return nil
}
