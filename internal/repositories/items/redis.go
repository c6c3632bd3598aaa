package items

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/storage"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

const nextIDKey = "item:next_id"

// Data represents the serialized form of an item in Redis
type Data struct {
	ID       uint64                  `json:"id"`
	OwnerID  string                  `json:"owner_id,omitempty"`
	Code     string                  `json:"code"`
	Name     string                  `json:"name"`
	Class    string                  `json:"class"`
	SubClass string                  `json:"sub_class"`
	Tier     int                     `json:"tier"`
	Rarity   string                  `json:"rarity"`
	Weapon   *items.WeaponDescriptor `json:"weapon,omitempty"`
	Stats    stats.List              `json:"stats"`
	Affixes  []string                `json:"affixes,omitempty"`
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed item repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &redisRepo{client: cfg.Client}
}

// NewRedis creates a new Redis-backed item repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func itemKey(id storage.ItemID) string {
	return fmt.Sprintf("item:%d", id)
}

func ownerItemsKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:items", ownerID)
}

func member(id storage.ItemID) string {
	return strconv.FormatUint(uint64(id), 10)
}

// Get retrieves an item by ID
func (r *redisRepo) Get(ctx context.Context, id storage.ItemID) (*items.Item, error) {
	if id == storage.Empty {
		return nil, rpgerr.InvalidArgument("item ID is required")
	}

	data, err := r.getData(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromData(data)
}

func (r *redisRepo) getData(ctx context.Context, id storage.ItemID) (*Data, error) {
	jsonData, err := r.client.Get(ctx, itemKey(id)).Bytes()
	if err == redis.Nil {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, rpgerr.Wrapf(err, "failed to get item %d", id)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, rpgerr.Wrapf(err, "failed to unmarshal item %d", id)
	}
	return &data, nil
}

// load fetches items with one MGET. Missing items come back as nil.
func (r *redisRepo) load(ctx context.Context, ids []storage.ItemID) ([]*Data, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, rpgerr.Wrap(err, "failed to get items")
	}

	result := make([]*Data, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var data Data
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, rpgerr.Wrapf(err, "failed to unmarshal item %d", ids[i])
		}
		result[i] = &data
	}
	return result, nil
}

// GetMany retrieves items in the order of ids
func (r *redisRepo) GetMany(ctx context.Context, ids []storage.ItemID) ([]*items.Item, error) {
	loaded, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*items.Item, 0, len(ids))
	for i, data := range loaded {
		if data == nil {
			return nil, notFound(ids[i])
		}
		it, err := fromData(data)
		if err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	return result, nil
}

// ListByOwner retrieves every item owned by a unit. Index entries whose item
// is gone are skipped.
func (r *redisRepo) ListByOwner(ctx context.Context, ownerID string) ([]*items.Item, error) {
	if ownerID == "" {
		return nil, rpgerr.InvalidArgument("owner ID is required")
	}

	members, err := r.client.SMembers(ctx, ownerItemsKey(ownerID)).Result()
	if err != nil {
		return nil, rpgerr.Wrapf(err, "failed to list items for owner %s", ownerID)
	}

	ids := make([]storage.ItemID, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			return nil, rpgerr.Internalf("owner %s indexes a malformed item id %q", ownerID, m)
		}
		ids = append(ids, storage.ItemID(id))
	}

	loaded, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	var result []*items.Item
	for _, data := range loaded {
		if data == nil || data.OwnerID != ownerID {
			continue
		}
		it, err := fromData(data)
		if err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	sortByID(result)
	return result, nil
}

// Save creates or replaces an item
func (r *redisRepo) Save(ctx context.Context, item *items.Item) error {
	return r.SaveAll(ctx, []*items.Item{item})
}

// SaveAll writes every item and its owner index in one MULTI/EXEC. Items
// that changed owner are removed from the previous owner's index.
func (r *redisRepo) SaveAll(ctx context.Context, list []*items.Item) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]storage.ItemID, len(list))
	payloads := make([]string, len(list))
	for i, it := range list {
		if err := validate(it); err != nil {
			return err
		}
		jsonData, err := json.Marshal(toData(it))
		if err != nil {
			return rpgerr.Wrapf(err, "failed to marshal item %d", it.ID)
		}
		ids[i] = it.ID
		payloads[i] = string(jsonData)
	}

	previous, err := r.load(ctx, ids)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, it := range list {
			pipe.Set(ctx, itemKey(it.ID), payloads[i], 0)
			if old := previous[i]; old != nil && old.OwnerID != "" && old.OwnerID != it.OwnerID {
				pipe.SRem(ctx, ownerItemsKey(old.OwnerID), member(it.ID))
			}
			if it.OwnerID != "" {
				pipe.SAdd(ctx, ownerItemsKey(it.OwnerID), member(it.ID))
			}
		}
		return nil
	})
	if err != nil {
		return rpgerr.Wrapf(err, "failed to save %d items", len(list))
	}
	return nil
}

// Delete removes an item and its owner index entry
func (r *redisRepo) Delete(ctx context.Context, id storage.ItemID) error {
	if id == storage.Empty {
		return rpgerr.InvalidArgument("item ID is required")
	}

	data, err := r.getData(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, itemKey(id))
		if data.OwnerID != "" {
			pipe.SRem(ctx, ownerItemsKey(data.OwnerID), member(id))
		}
		return nil
	})
	if err != nil {
		return rpgerr.Wrapf(err, "failed to delete item %d", id)
	}
	return nil
}

// NextID reserves a fresh item ID from a redis counter
func (r *redisRepo) NextID(ctx context.Context) (storage.ItemID, error) {
	id, err := r.client.Incr(ctx, nextIDKey).Result()
	if err != nil {
		return storage.Empty, rpgerr.Wrap(err, "failed to reserve item id")
	}
	return storage.ItemID(id), nil
}

func toData(it *items.Item) *Data {
	data := &Data{
		ID:       uint64(it.ID),
		OwnerID:  it.OwnerID,
		Code:     it.Code,
		Name:     it.Name,
		Class:    it.Class.String(),
		SubClass: it.SubClass.String(),
		Tier:     int(it.Tier),
		Rarity:   it.Rarity.String(),
		Stats:    it.Stats,
		Affixes:  it.Affixes,
	}
	if w, ok := it.Weapon(); ok {
		data.Weapon = &w
	}
	return data
}

func fromData(data *Data) (*items.Item, error) {
	class, err := items.ParseClass(data.Class)
	if err != nil {
		return nil, rpgerr.WrapWithCode(err, rpgerr.CodeInternal, "stored item has a bad class").
			WithMeta("item_id", data.ID)
	}
	sub, err := items.ParseSubClass(data.SubClass)
	if err != nil {
		return nil, rpgerr.WrapWithCode(err, rpgerr.CodeInternal, "stored item has a bad sub-class").
			WithMeta("item_id", data.ID)
	}
	rarity, err := items.ParseRarity(data.Rarity)
	if err != nil {
		return nil, rpgerr.WrapWithCode(err, rpgerr.CodeInternal, "stored item has a bad rarity").
			WithMeta("item_id", data.ID)
	}

	it := &items.Item{
		ID:       storage.ItemID(data.ID),
		OwnerID:  data.OwnerID,
		Code:     data.Code,
		Name:     data.Name,
		Class:    class,
		SubClass: sub,
		Tier:     items.Tier(data.Tier),
		Rarity:   rarity,
		Equip:    items.DescriptorFor(sub),
		Stats:    data.Stats,
		Affixes:  data.Affixes,
	}
	if data.Weapon != nil {
		it.Equip = *data.Weapon
	}
	return it, nil
}
