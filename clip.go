package main

import (
	"context"
	"errors"
	"time"

	"github.com/DuarteFaria/clipz/clipback"
)

// sleepSlice is the granularity of poller sleeps, so a stop signal is
// observed quickly and the persistence-flush check gets a regular turn.
const sleepSlice = 50 * time.Millisecond

// failureBackoffStep is added per consecutive failed probe.
const failureBackoffStep = 50 * time.Millisecond

// Poller is the background loop that feeds clipboard changes into the
// history. It self-tunes its cadence: fast while the clipboard is
// active, slow after InactiveThreshold without a change, backing off
// further on consecutive probe failures.
type Poller struct {
	classifier *clipback.Classifier
	app        *App
	persister  *Persister
	cfg        Config

	done chan struct{}
}

func NewPoller(classifier *clipback.Classifier, app *App, persister *Persister, cfg Config) *Poller {
	return &Poller{
		classifier: classifier,
		app:        app,
		persister:  persister,
		cfg:        cfg,
		done:       make(chan struct{}),
	}
}

// Done is closed when the poll loop has fully exited.
func (p *Poller) Done() <-chan struct{} { return p.done }

// Run polls until ctx is cancelled. Empty-clipboard and failed-probe
// errors back off and retry; anything else is fatal to the loop.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.done)

	failures := 0
	lastChange := time.Now()
	slices := 0

	for ctx.Err() == nil {
		payload, err := p.classifier.Classify()
		switch {
		case err == nil:
			failures = 0
			if p.ingest(payload) {
				lastChange = time.Now()
			}
			interval := p.cfg.MinPollInterval
			if time.Since(lastChange) > p.cfg.InactiveThreshold {
				interval = p.cfg.MaxPollInterval
			}
			p.sleep(ctx, interval, &slices)

		case errors.Is(err, clipback.ErrNoContent), errors.Is(err, clipback.ErrCommandFailed):
			failures++
			backoff := p.cfg.MinPollInterval + time.Duration(failures)*failureBackoffStep
			if backoff > p.cfg.MaxPollInterval {
				backoff = p.cfg.MaxPollInterval
			}
			p.sleep(ctx, backoff, &slices)

		default:
			logger.Error("clipboard poll failed", "error", err)
			return
		}
	}
}

// ingest sanitizes textual payloads and hands them to the history.
// Reports whether the store changed.
func (p *Poller) ingest(payload *clipback.Payload) bool {
	switch payload.Kind {
	case clipback.KindText, clipback.KindURL, clipback.KindColor:
		payload.Content = sanitizeClipboardText(payload.Content)
		if payload.Content == "" {
			return false
		}
	}
	return p.app.AddCapture(payload)
}

// sleep waits for d in slices, bailing out on cancellation. Every
// ForceSaveCycles slices it gives the persister a flush opportunity.
func (p *Poller) sleep(ctx context.Context, d time.Duration, slices *int) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return
		case <-time.After(sleepSlice):
		}
		*slices++
		if p.cfg.ForceSaveCycles > 0 && *slices%p.cfg.ForceSaveCycles == 0 {
			if err := p.persister.MaybeSave(p.app.history.Snapshot()); err != nil {
				logger.Warn("batched save failed, will retry", "error", err)
			}
		}
	}
}
