package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// gorilla's FilesystemStore names its files "session_<id>".
const sessionFilePrefix = "session_"

// Scheduler periodically removes session files that outlived their max age.
// The filesystem session store never deletes them on its own.
type Scheduler struct {
	cron   *cron.Cron
	dir    string
	maxAge time.Duration
	log    zerolog.Logger
}

func NewScheduler(dir string, maxAge time.Duration, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:   c,
		dir:    dir,
		maxAge: maxAge,
		log:    log,
	}
}

// Start is a no-op when sessions are not kept on disk.
func (s *Scheduler) Start(schedule string) error {
	if s.dir == "" || s.maxAge <= 0 {
		return nil
	}

	if _, err := s.cron.AddFunc(schedule, s.purge); err != nil {
		return fmt.Errorf("schedule session purge: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop returns a context that is done once a running purge has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) purge() {
	n, err := s.PurgeSessions(time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("session purge failed")
		return
	}
	s.log.Debug().Int("removed", n).Msg("session purge")
}

// PurgeSessions deletes session files last written before now minus the max
// age and reports how many were removed.
func (s *Scheduler) PurgeSessions(now time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read session dir: %w", err)
	}

	cutoff := now.Add(-s.maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), sessionFilePrefix) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue // removed concurrently
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove %s: %w", e.Name(), err)
		}
		removed++
	}

	return removed, nil
}
