package runsave

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/deckfall/run-api/internal/entities/run"
	"github.com/deckfall/run-api/internal/errors"
	"github.com/deckfall/run-api/internal/pkg/clock"
	redisclient "github.com/deckfall/run-api/internal/redis"
)

const (
	saveKeyPrefix    = "runsave:"
	accountKeyPrefix = "runsave:account:"

	// Error messages
	errSaveNil        = "save cannot be nil"
	errSaveIDEmpty    = "save ID cannot be empty"
	errAccountIDEmpty = "account ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis run save repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed run save repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Save == nil {
		return nil, errors.InvalidArgument(errSaveNil)
	}
	if input.Save.ID == "" {
		return nil, errors.InvalidArgument(errSaveIDEmpty)
	}
	if input.Save.AccountID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}

	key := saveKeyPrefix + input.Save.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("save with ID %s already exists", input.Save.ID)
	}

	now := r.clock.Now()
	input.Save.CreatedAt = now
	input.Save.UpdatedAt = now

	data, err := json.Marshal(input.Save)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal save")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0) // saves have no TTL
	pipe.Set(ctx, accountKeyPrefix+input.Save.AccountID, input.Save.ID, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create save")
	}

	return &CreateOutput{Save: input.Save}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSaveIDEmpty)
	}

	save, err := r.get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Save: save}, nil
}

func (r *redisRepository) GetCurrent(ctx context.Context, input GetCurrentInput) (*GetCurrentOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}

	indexKey := accountKeyPrefix + input.AccountID
	id, err := r.client.Get(ctx, indexKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("account %s has no current run", input.AccountID)
		}
		return nil, errors.Wrapf(err, "failed to read account index")
	}

	save, err := r.get(ctx, id)
	if err != nil {
		// If the save vanished, clean up the dangling index.
		if errors.IsNotFound(err) {
			slog.WarnContext(ctx, "save missing for account index, cleaning up",
				"account_id", input.AccountID,
				"save_id", id)
			r.client.Del(ctx, indexKey)
			return nil, errors.NotFoundf("account %s has no current run", input.AccountID)
		}
		return nil, err
	}

	return &GetCurrentOutput{Save: save}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Save == nil {
		return nil, errors.InvalidArgument(errSaveNil)
	}
	if input.Save.ID == "" {
		return nil, errors.InvalidArgument(errSaveIDEmpty)
	}

	key := saveKeyPrefix + input.Save.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("save with ID %s not found", input.Save.ID)
	}

	input.Save.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(input.Save)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal save")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update save")
	}

	slog.DebugContext(ctx, "run save updated",
		"save_id", input.Save.ID,
		"status", string(input.Save.Status),
		"client_tick", input.Save.ClientTick)

	return &UpdateOutput{Save: input.Save}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSaveIDEmpty)
	}

	save, err := r.get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, saveKeyPrefix+input.ID)

	// Only drop the account index if it still points at this save.
	indexKey := accountKeyPrefix + save.AccountID
	current, err := r.client.Get(ctx, indexKey).Result()
	if err == nil && current == input.ID {
		pipe.Del(ctx, indexKey)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete save")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) get(ctx context.Context, id string) (*run.RunSave, error) {
	result, err := r.client.Get(ctx, saveKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("save with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get save")
	}

	var save run.RunSave
	if err := json.Unmarshal([]byte(result), &save); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal save")
	}
	return &save, nil
}
