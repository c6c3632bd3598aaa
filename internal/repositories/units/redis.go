package units

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/units"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

// Data represents the serialized form of a unit in Redis
type Data struct {
	ID        string                              `json:"id"`
	Name      string                              `json:"name"`
	Kind      string                              `json:"kind"`
	Level     int                                 `json:"level"`
	Base      stats.List                          `json:"base"`
	Stats     stats.List                          `json:"stats"`
	Storage   map[storage.NodeID][]storage.ItemID `json:"storage"`
	Player    *units.PlayerDescriptor             `json:"player,omitempty"`
	Monster   *units.MonsterDescriptor            `json:"monster,omitempty"`
	CreatedAt time.Time                           `json:"created_at"`
	UpdatedAt time.Time                           `json:"updated_at"`
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
	clock  TimeProvider
}

// NewRedisRepository creates a new Redis-backed unit repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	clock := cfg.TimeProvider
	if clock == nil {
		clock = utcClock{}
	}

	return &redisRepo{
		client: cfg.Client,
		clock:  clock,
	}
}

// NewRedis creates a new Redis-backed unit repository with defaults
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func unitKey(id string) string {
	return fmt.Sprintf("unit:%s", id)
}

func accountUnitsKey(accountID string) string {
	return fmt.Sprintf("account:%s:units", accountID)
}

// Get retrieves a unit by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*units.Unit, error) {
	if id == "" {
		return nil, rpgerr.InvalidArgument("unit ID is required")
	}

	data, err := r.getData(ctx, id)
	if err != nil {
		return nil, err
	}

	return fromData(data)
}

func (r *redisRepo) getData(ctx context.Context, id string) (*Data, error) {
	jsonData, err := r.client.Get(ctx, unitKey(id)).Bytes()
	if err == redis.Nil {
		return nil, rpgerr.NotFoundf("unit with ID '%s' not found", id).
			WithMeta("unit_id", id)
	}
	if err != nil {
		return nil, rpgerr.Wrapf(err, "failed to get unit %s", id)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, rpgerr.Wrapf(err, "failed to unmarshal unit %s", id)
	}
	return &data, nil
}

// Save creates or replaces a unit. Creation time is kept from the first
// save; player units are indexed by account.
func (r *redisRepo) Save(ctx context.Context, unit *units.Unit) error {
	if err := validate(unit); err != nil {
		return err
	}

	data, err := toData(unit)
	if err != nil {
		return err
	}

	now := r.clock.Now()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	data.UpdatedAt = now

	jsonData, err := json.Marshal(data)
	if err != nil {
		return rpgerr.Wrap(err, "failed to marshal unit")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, unitKey(unit.ID), string(jsonData), 0)
	if data.Player != nil && data.Player.AccountID != "" {
		pipe.SAdd(ctx, accountUnitsKey(data.Player.AccountID), unit.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return rpgerr.Wrapf(err, "failed to save unit %s", unit.ID)
	}

	unit.CreatedAt, unit.UpdatedAt = data.CreatedAt, data.UpdatedAt
	return nil
}

// Delete removes a unit and its account index entry
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return rpgerr.InvalidArgument("unit ID is required")
	}

	data, err := r.getData(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, unitKey(id))
	if data.Player != nil && data.Player.AccountID != "" {
		pipe.SRem(ctx, accountUnitsKey(data.Player.AccountID), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return rpgerr.Wrapf(err, "failed to delete unit %s", id)
	}

	return nil
}

// ListByAccount retrieves the player units owned by an account, oldest first
func (r *redisRepo) ListByAccount(ctx context.Context, accountID string) ([]*units.Unit, error) {
	if accountID == "" {
		return nil, rpgerr.InvalidArgument("account ID is required")
	}

	ids, err := r.client.SMembers(ctx, accountUnitsKey(accountID)).Result()
	if err != nil {
		return nil, rpgerr.Wrapf(err, "failed to list units for account %s", accountID)
	}

	result := make([]*units.Unit, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			u, err := r.Get(gctx, id)
			if err != nil {
				return err
			}
			result[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortByCreated(result)
	return result, nil
}

func toData(u *units.Unit) (*Data, error) {
	data := &Data{
		ID:        u.ID,
		Name:      u.Name,
		Kind:      u.Kind().String(),
		Level:     u.Level,
		Base:      u.Base,
		Stats:     u.Stats,
		Storage:   u.Storage,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	switch d := u.Descriptor.(type) {
	case *units.PlayerDescriptor:
		data.Player = d
	case *units.MonsterDescriptor:
		data.Monster = d
	default:
		return nil, rpgerr.InvalidArgumentf("unit %s has an unknown descriptor %T", u.ID, u.Descriptor)
	}
	return data, nil
}

func fromData(data *Data) (*units.Unit, error) {
	u := &units.Unit{
		ID:        data.ID,
		Name:      data.Name,
		Level:     data.Level,
		Base:      data.Base,
		Stats:     data.Stats,
		Storage:   storage.Storage(data.Storage),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}

	switch {
	case data.Player != nil:
		u.Descriptor = data.Player
	case data.Monster != nil:
		u.Descriptor = data.Monster
	default:
		return nil, rpgerr.Internalf("unit %s was stored without a descriptor", data.ID).
			WithMeta("kind", data.Kind)
	}
	return u, nil
}
