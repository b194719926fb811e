// Package tracker decides which detections are worth reporting: a payload is
// announced at most once per run, and report bursts are spaced by a cooldown.
package tracker

import (
	"fmt"
	"time"

	"barcodereader/internal/dto"
)

// DefaultCooldown is the minimum gap between two report bursts.
const DefaultCooldown = 2 * time.Second

// SeenStore remembers reported payload texts for the lifetime of a run.
type SeenStore interface {
	Contains(text string) (bool, error)
	Insert(text, symbology string) error
	Count() (int, error)
}

type Tracker struct {
	seen       SeenStore
	cooldown   time.Duration
	lastReport time.Time
}

// New creates a tracker whose cooldown clock starts at start.
func New(seen SeenStore, cooldown time.Duration, start time.Time) *Tracker {
	return &Tracker{
		seen:       seen,
		cooldown:   cooldown,
		lastReport: start,
	}
}

// Consider returns the detections from one frame that should be reported
// at now. Within the cooldown nothing is reported, new payloads included,
// and the cooldown clock only moves when something is reported.
func (t *Tracker) Consider(normalized []dto.NormalizedDetection, now time.Time) ([]dto.NormalizedDetection, error) {
	if len(normalized) == 0 || now.Sub(t.lastReport) <= t.cooldown {
		return nil, nil
	}

	var report []dto.NormalizedDetection
	var storeErr error
	for _, d := range normalized {
		seen, err := t.seen.Contains(d.Text)
		if err != nil {
			storeErr = fmt.Errorf("seen-set lookup for %q: %w", d.Text, err)
			break
		}
		if seen {
			continue
		}
		if err := t.seen.Insert(d.Text, d.Symbology); err != nil {
			storeErr = fmt.Errorf("seen-set insert for %q: %w", d.Text, err)
			break
		}
		report = append(report, d)
	}

	if len(report) > 0 {
		t.lastReport = now
	}
	return report, storeErr
}

// LastReport returns the time of the most recent report burst.
func (t *Tracker) LastReport() time.Time {
	return t.lastReport
}

// Seen returns how many distinct payloads have been reported.
func (t *Tracker) Seen() int {
	n, err := t.seen.Count()
	if err != nil {
		return 0
	}
	return n
}
