package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/emrgen/mapshare/internal/model"
	redis "github.com/redis/go-redis/v9"
)

const participantTTL = time.Hour

func participantKey(id string) string {
	return "participant:" + id
}

func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return &Redis{client: client}
}

var _ ParticipantCache = (*Redis)(nil)

// Redis caches participant records across processes sharing a redis
// instance.
type Redis struct {
	client *redis.Client
}

func (r *Redis) GetParticipant(ctx context.Context, id string) (*model.Participant, error) {
	res := r.client.Get(ctx, participantKey(id))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	participant := &model.Participant{}
	if err := json.Unmarshal(buf, participant); err != nil {
		return nil, err
	}

	return participant, nil
}

func (r *Redis) SetParticipant(ctx context.Context, participant *model.Participant) error {
	marshal, err := json.Marshal(participant)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, participantKey(participant.ID), marshal, participantTTL).Err()
}

func (r *Redis) DeleteParticipant(ctx context.Context, id string) error {
	return r.client.Del(ctx, participantKey(id)).Err()
}

func (r *Redis) Client() *redis.Client {
	return r.client
}
