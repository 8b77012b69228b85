package job

import (
	"fmt"

	"github.com/robfig/cron"
)

type Job interface {
	Run()
}

// Scheduled pairs a cron spec with the job it fires.
type Scheduled struct {
	Spec string
	Job  Job
}

// NewScheduler registers every job on a fresh cron instance. The caller
// owns Start and Stop.
func NewScheduler(jobs ...Scheduled) (*cron.Cron, error) {
	c := cron.New()
	for _, s := range jobs {
		if err := c.AddFunc(s.Spec, s.Job.Run); err != nil {
			return nil, fmt.Errorf("schedule %q: %w", s.Spec, err)
		}
	}
	return c, nil
}
