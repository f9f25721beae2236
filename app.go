package main

import (
	"context"
	"fmt"
	"time"

	"github.com/DuarteFaria/clipz/clipback"
)

// shutdownGrace bounds how long shutdown waits for the poller to
// acknowledge the stop signal before force-flushing persistence anyway.
const shutdownGrace = 2 * time.Second

// App wires the clipboard history engine together: classifier, entry
// store, persistence, poller, and the protocol surfaces.
type App struct {
	cfg        Config
	backend    clipback.Backend
	images     *clipback.ImageStore
	classifier *clipback.Classifier
	history    *History
	persister  *Persister
	poller     *Poller
	broadcast  *Broadcaster

	autoPaste bool
}

func NewApp(cfg Config, backend clipback.Backend, imageDir string) (*App, error) {
	images, err := clipback.NewImageStore(imageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to set up image store: %w", err)
	}

	classifier := clipback.NewClassifier(backend, images, cfg.MaxContentBytes)
	history := NewHistory(cfg.MaxEntries, images, classifier)
	persister := NewPersister(historyFilePath(), cfg.BatchSaveInterval)
	history.SetOnDirty(persister.MarkDirty)

	app := &App{
		cfg:        cfg,
		backend:    backend,
		images:     images,
		classifier: classifier,
		history:    history,
		persister:  persister,
		broadcast:  NewBroadcaster(),
	}
	app.poller = NewPoller(classifier, app, persister, cfg)
	return app, nil
}

// Start seeds the history from the persisted document and launches the
// background poller. The returned context is cancelled when the poller
// exits, so a fatal poll error tears the process down instead of
// leaving a frozen history being served.
func (a *App) Start(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	if entries := a.persister.Load(); len(entries) > 0 {
		a.history.Seed(entries)
		logger.Info("loaded history", "entries", len(entries), "path", a.persister.Path())
	}
	go func() {
		a.poller.Run(ctx)
		cancel()
	}()
	return ctx
}

// Shutdown waits (briefly) for the poller to stop, then force-flushes
// the history to disk. The stop signal is ctx cancellation; callers
// cancel before invoking Shutdown.
func (a *App) Shutdown() {
	select {
	case <-a.poller.Done():
	case <-time.After(shutdownGrace):
		logger.Warn("poller did not stop in time, flushing anyway")
	}
	if err := a.persister.Save(a.history.Snapshot()); err != nil {
		logger.Error("final history flush failed", "error", err)
	}
}

// PushEntries broadcasts the current listing to every subscriber.
func (a *App) PushEntries() {
	a.broadcast.Broadcast(entriesMessage{Type: msgEntries, Data: entryMessages(a.history.Snapshot())})
}

// AddCapture feeds one classified clipboard capture into the history.
// Reports whether the store changed.
func (a *App) AddCapture(p *clipback.Payload) bool {
	if !a.history.Add(p) {
		return false
	}
	a.PushEntries()
	return true
}

// SelectEntry re-applies the entry at rank to the live clipboard and
// moves it to the front, optionally synthesizing a paste chord. acked,
// when non-nil, runs between the mutation and the entries push so the
// invoking surface can ack on its own stream first. Every surface gets
// the push, whichever one drove the mutation.
func (a *App) SelectEntry(rank int, acked func()) (Entry, error) {
	e, err := a.history.SelectByRank(rank)
	if err != nil {
		return Entry{}, err
	}
	if a.autoPaste {
		synthesizePaste()
	}
	if acked != nil {
		acked()
	}
	a.PushEntries()
	return e, nil
}

// RemoveEntry deletes the entry at rank.
func (a *App) RemoveEntry(rank int, acked func()) error {
	if err := a.history.RemoveByRank(rank); err != nil {
		return err
	}
	if acked != nil {
		acked()
	}
	a.PushEntries()
	return nil
}

// ClearHistory deletes everything except the current entry.
func (a *App) ClearHistory(acked func()) {
	a.history.Clear()
	if acked != nil {
		acked()
	}
	a.PushEntries()
}

// WipeAll deletes every entry and the persisted document. Full reset,
// not a normal operation.
func (a *App) WipeAll() error {
	a.history.Wipe()
	err := a.persister.Wipe()
	a.PushEntries()
	return err
}
