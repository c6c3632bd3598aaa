package rngstates

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/dice"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

const (
	fieldSecret  = "secret"
	fieldCounter = "counter"
	fieldOffset  = "offset"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed rng state repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &redisRepo{client: cfg.Client}
}

// NewRedis creates a new Redis-backed rng state repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func stateKeyFor(guild string, name dice.ContextName) string {
	return fmt.Sprintf("guild:%s:rng:%s", guild, name)
}

// Get reads the state hash of a guild's context
func (r *redisRepo) Get(ctx context.Context, guild string, name dice.ContextName) (*dice.State, error) {
	if err := validateKey(guild, name); err != nil {
		return nil, err
	}

	fields, err := r.client.HGetAll(ctx, stateKeyFor(guild, name)).Result()
	if err != nil {
		return nil, rpgerr.Wrapf(err, "failed to get %s rng context for guild %s", name, guild)
	}
	if len(fields) == 0 {
		return nil, notFound(guild, name)
	}

	state := &dice.State{
		Guild:  guild,
		Name:   name,
		Secret: fields[fieldSecret],
	}
	if state.Counter, err = parseField(fields, fieldCounter); err != nil {
		return nil, err
	}
	if state.Offset, err = parseField(fields, fieldOffset); err != nil {
		return nil, err
	}
	return state, nil
}

func parseField(fields map[string]string, field string) (uint64, error) {
	raw, ok := fields[field]
	if !ok {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, rpgerr.WrapWithCode(err, rpgerr.CodeInternal, "stored rng state is malformed").
			WithMeta("field", field)
	}
	return v, nil
}

// Save writes the hash under WATCH. A concurrent writer between the check
// and EXEC makes the transaction fail with CodeAborted.
func (r *redisRepo) Save(ctx context.Context, state *dice.State, expectedCounter uint64) error {
	if err := validate(state); err != nil {
		return err
	}

	key := stateKeyFor(state.Guild, state.Name)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, fieldCounter).Uint64()
		if err != nil && err != redis.Nil {
			return rpgerr.Wrapf(err, "failed to read counter of %s", key)
		}
		if current != expectedCounter {
			return conflict(state, current, expectedCounter)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				fieldSecret, state.Secret,
				fieldCounter, state.Counter,
				fieldOffset, state.Offset,
			)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return rpgerr.WrapWithCode(err, rpgerr.CodeAborted, "rng context changed during save").
			WithMeta("guild", state.Guild).
			WithMeta("context", string(state.Name))
	default:
		return rpgerr.Wrapf(err, "failed to save %s", key)
	}
}
