package presence

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"
)

func presenceKey(documentID string) string {
	return "presence:document:" + documentID
}

var _ Tracker = (*RedisTracker)(nil)
var _ Sweeper = (*RedisTracker)(nil)

// RedisTracker shares presence between processes through a redis hash
// per document. Staleness filtering still happens at read time, the key
// TTL only bounds how long an abandoned document lingers.
type RedisTracker struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisTracker(client *redis.Client, ttl time.Duration) *RedisTracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisTracker{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (r *RedisTracker) Publish(ctx context.Context, participantID, documentID string, loc *Location) error {
	entry := Entry{
		ParticipantID: participantID,
		DocumentID:    documentID,
		Location:      loc,
		LastSeen:      r.now(),
	}

	marshal, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if err := p.HSet(ctx, presenceKey(documentID), participantID, marshal).Err(); err != nil {
			return err
		}

		// Keep the hash around for a few TTL windows so subscribers can
		// still observe recently departed participants aging out.
		return p.Expire(ctx, presenceKey(documentID), 4*r.ttl).Err()
	})

	return err
}

func (r *RedisTracker) Subscribers(ctx context.Context, documentID string) ([]Entry, error) {
	values, err := r.client.HGetAll(ctx, presenceKey(documentID)).Result()
	if err != nil {
		return nil, err
	}

	cutoff := r.now().Add(-r.ttl)
	var live []Entry
	for _, raw := range values {
		var entry Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			continue
		}
		if entry.LastSeen.Before(cutoff) {
			continue
		}
		live = append(live, entry)
	}

	sort.Slice(live, func(i, j int) bool {
		return live[i].ParticipantID < live[j].ParticipantID
	})

	return live, nil
}

// Sweep removes stale fields from every document hash.
func (r *RedisTracker) Sweep(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, presenceKey("*"), 0).Iterator()
	cutoff := r.now().Add(-r.ttl)

	for iter.Next(ctx) {
		key := iter.Val()
		values, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}

		for field, raw := range values {
			var entry Entry
			if err := json.Unmarshal([]byte(raw), &entry); err != nil || entry.LastSeen.Before(cutoff) {
				if err := r.client.HDel(ctx, key, field).Err(); err != nil {
					return err
				}
			}
		}
	}

	return iter.Err()
}
