package job

import "log/slog"

type SessionPurger interface {
	Purge() int
}

type SessionPurgeJob struct {
	sessions SessionPurger
}

func NewSessionPurgeJob(sessions SessionPurger) *SessionPurgeJob {
	return &SessionPurgeJob{sessions: sessions}
}

func (j *SessionPurgeJob) Run() {
	if n := j.sessions.Purge(); n > 0 {
		slog.Info("purged expired oauth sessions", "count", n)
	}
}
