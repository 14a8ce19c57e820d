package jobs

import (
	"context"

	"github.com/emrgen/mapshare/internal/queue"
	"github.com/emrgen/mapshare/internal/service"
	"github.com/sirupsen/logrus"
)

// FeedApply drains the record change feed into the sync coordinator's
// merge path. One consumer per process, the merge policy handles
// whatever interleaving the feed delivers.
type FeedApply struct {
	feed   queue.ChangeQueue
	sync   *service.SyncCoordinator
	cancel context.CancelFunc
}

func NewFeedApply(feed queue.ChangeQueue, sync *service.SyncCoordinator) *FeedApply {
	return &FeedApply{
		feed: feed,
		sync: sync,
	}
}

func (f *FeedApply) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel

	changes, err := f.feed.Subscribe(ctx)
	if err != nil {
		logrus.Errorf("failed to subscribe to change feed: %v", err)
		return
	}

	for change := range changes {
		if err := f.sync.ApplyRemote(ctx, change); err != nil {
			logrus.Errorf("failed to apply remote change %s/%s: %v", change.Kind, change.RecordID, err)
		}
	}
}

func (f *FeedApply) Stop() {
	if f.cancel != nil {
		f.cancel()
	}
}
