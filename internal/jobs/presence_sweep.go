package jobs

import (
	"context"

	"github.com/emrgen/mapshare/internal/presence"
	"github.com/sirupsen/logrus"
)

// PresenceSweep periodically compacts stale presence entries out of the
// tracker's backing store. Advisory only, Subscribers already filters
// stale entries at read time.
type PresenceSweep struct {
	tracker  presence.Sweeper
	schedule string
}

func NewPresenceSweep(tracker presence.Sweeper, schedule string) *PresenceSweep {
	if schedule == "" {
		schedule = "@every 1m"
	}

	return &PresenceSweep{
		tracker:  tracker,
		schedule: schedule,
	}
}

func (p *PresenceSweep) Schedule() string {
	return p.schedule
}

func (p *PresenceSweep) Run() {
	if err := p.tracker.Sweep(context.Background()); err != nil {
		logrus.Errorf("presence sweep failed: %v", err)
	}
}
