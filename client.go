package mapshare

import (
	"io"

	"github.com/emrgen/mapshare/internal/cache"
	"github.com/emrgen/mapshare/internal/cloud"
	"github.com/emrgen/mapshare/internal/config"
	"github.com/emrgen/mapshare/internal/identity"
	"github.com/emrgen/mapshare/internal/jobs"
	"github.com/emrgen/mapshare/internal/presence"
	"github.com/emrgen/mapshare/internal/queue"
	"github.com/emrgen/mapshare/internal/service"
	"github.com/emrgen/mapshare/internal/store"
)

// Client is the in-process surface the host application wires against.
// Construct one per process and hand it to the presentation layer.
type Client struct {
	Store     store.Store
	Cloud     cloud.Service
	Resolver  *service.ShareResolver
	Matcher   *service.DocumentMatcher
	Sync      *service.SyncCoordinator
	Documents *service.DocumentService
	Reactions *service.ReactionLedger
	Identity  *identity.Cache
	Presence  presence.Tracker

	feed   queue.ChangeQueue
	runner *jobs.Runner
}

var _ io.Closer = (*Client)(nil)

// NewClient assembles the sync core from config. cloudSvc is the replica
// service boundary; nil falls back to an in-memory replica service over
// the local store, the offline mode the CLI and debug harness run in.
func NewClient(cfg *config.Config, cloudSvc cloud.Service) (*Client, error) {
	gormStore := store.NewGormStore(config.GetDb(cfg))
	if err := gormStore.Migrate(); err != nil {
		return nil, err
	}

	if cloudSvc == nil {
		cloudSvc = cloud.NewMemory(
			store.NewDefaultProvider(gormStore),
			cloud.Identity{ID: "local-user", GivenName: "Me"},
		)
	}

	var participants cache.ParticipantCache
	var tracker presence.Tracker
	var sweeper presence.Sweeper

	if cfg.RedisAddr != "" {
		rdb := cache.NewRedis(cfg.RedisAddr)
		participants = rdb
		redisTracker := presence.NewRedisTracker(rdb.Client(), cfg.PresenceTTL)
		tracker = redisTracker
		sweeper = redisTracker
	} else {
		participants = cache.NewMemoryParticipantCache()
		memTracker := presence.NewMemoryTracker(cfg.PresenceTTL)
		tracker = memTracker
		sweeper = memTracker
	}

	var feed queue.ChangeQueue
	if cfg.KafkaBrokers != "" {
		kq, err := queue.NewKafkaQueue(cfg.KafkaBrokers, cfg.KafkaGroup)
		if err != nil {
			return nil, err
		}
		feed = kq
	} else {
		feed = queue.NewMemoryQueue()
	}

	sync := service.NewSyncCoordinator(gormStore, cloudSvc, feed)
	matcher := service.NewDocumentMatcher(gormStore, cloudSvc)

	client := &Client{
		Store:     gormStore,
		Cloud:     cloudSvc,
		Matcher:   matcher,
		Resolver:  service.NewShareResolver(gormStore, cloudSvc, matcher),
		Sync:      sync,
		Documents: service.NewDocumentService(gormStore, sync),
		Reactions: service.NewReactionLedger(gormStore),
		Identity:  identity.NewCache(gormStore, participants, cloudSvc),
		Presence:  tracker,
		feed:      feed,
	}

	client.runner = jobs.NewRunner(
		[]jobs.Job{jobs.NewFeedApply(feed, sync)},
		[]jobs.CronJob{jobs.NewPresenceSweep(sweeper, "")},
	)
	client.runner.Run()

	return client, nil
}

func (c *Client) Close() error {
	c.runner.Stop()
	return c.feed.Close()
}
