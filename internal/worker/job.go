package worker

import (
	"time"
)

// Job asks for one build-deploy run.
type Job struct {
	Reason string   // "fsnotify" or "poll"
	Paths  []string // changed files, when known
	At     time.Time
}
