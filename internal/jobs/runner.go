package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Run()
}

type CronJob interface {
	Schedule() string
	Job
}

// Runner drives background jobs off a single cron instance. A job that
// is still running when its next tick fires is skipped, never stacked.
type Runner struct {
	cron     *cron.Cron
	jobs     []Job
	cronJobs []CronJob
	running  mapset.Set[Job]
	mu       sync.Mutex
}

func NewRunner(jobs []Job, cronJobs []CronJob) *Runner {
	return &Runner{
		cron:     cron.New(),
		jobs:     jobs,
		cronJobs: cronJobs,
		running:  mapset.NewSet[Job](),
	}
}

// Run schedules the cron jobs and starts the long-running jobs in their
// own goroutines.
func (r *Runner) Run() {
	for _, job := range r.cronJobs {
		err := r.cron.AddFunc(job.Schedule(), func() {
			r.runGuarded(job)
		})
		if err != nil {
			logrus.Errorf("failed to schedule job: %v", err)
			panic(err)
		}
	}

	for _, job := range r.jobs {
		go job.Run()
	}

	r.cron.Start()
}

func (r *Runner) runGuarded(job Job) {
	r.mu.Lock()
	if r.running.Contains(job) {
		r.mu.Unlock()
		logrus.Warn("job is still running, skipping tick")
		return
	}
	r.running.Add(job)
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.running.Remove(job)
	}()

	job.Run()
}

func (r *Runner) Stop() {
	logrus.Infof("stopping background jobs")
	r.cron.Stop()
}
