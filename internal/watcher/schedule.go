package watcher

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ParseSchedule accepts a cron expression or descriptor ("@every 2s",
// "*/5 * * * *") or a plain duration ("1s"). Sub-second durations are
// rounded up to one second by cron.Every.
func ParseSchedule(spec string) (cron.Schedule, error) {
	if d, err := time.ParseDuration(spec); err == nil {
		if d <= 0 {
			return nil, fmt.Errorf("poll interval must be positive, got %s", spec)
		}
		return cron.Every(d), nil
	}

	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("poll schedule %q: %w", spec, err)
	}
	return sched, nil
}
