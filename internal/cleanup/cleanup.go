package cleanup

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Reaper periodically deletes generated artifacts (reports, merged PDFs,
// leftover render directories) that outlived maxAge. Files normally get
// removed right after delivery; the reaper catches the ones orphaned by
// crashes and send failures.
type Reaper struct {
	dir    string
	maxAge time.Duration
	cron   *cron.Cron
}

func NewReaper(dir string, maxAge time.Duration) *Reaper {
	return &Reaper{dir: dir, maxAge: maxAge, cron: cron.New()}
}

// Start schedules a sweep every 30 minutes and runs one immediately.
func (r *Reaper) Start() error {
	if _, err := r.cron.AddFunc("*/30 * * * *", r.Sweep); err != nil {
		return err
	}
	r.cron.Start()
	go r.Sweep()
	log.Printf("[Reaper] watching %s, max age %s", r.dir, r.maxAge)
	return nil
}

func (r *Reaper) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// Sweep removes every entry in the watched directory older than maxAge.
func (r *Reaper) Sweep() {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[Reaper] read %s: %v", r.dir, err)
		}
		return
	}

	cutoff := time.Now().Add(-r.maxAge)
	removed := 0
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			log.Printf("[Reaper] remove %s: %v", path, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Printf("[Reaper] removed %d stale artifacts", removed)
	}
}
