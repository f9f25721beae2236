package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/DuarteFaria/clipz/clipback"
)

// Persister writes the history to a versioned JSON document. Saves are
// batched: a mutation marks the persister dirty, and MaybeSave only
// writes once the batching interval has elapsed. Shutdown forces an
// unconditional save.
type Persister struct {
	path     string
	interval time.Duration

	mu       sync.Mutex
	dirty    bool
	lastSave time.Time

	now func() time.Time
}

func NewPersister(path string, interval time.Duration) *Persister {
	return &Persister{path: path, interval: interval, now: time.Now}
}

// Path returns the document location.
func (p *Persister) Path() string { return p.path }

// MarkDirty records that the history changed since the last save.
func (p *Persister) MarkDirty() {
	p.mu.Lock()
	p.dirty = true
	p.mu.Unlock()
}

// MaybeSave writes the document if the history is dirty and the batching
// interval has elapsed since the last successful save.
func (p *Persister) MaybeSave(entries []Entry) error {
	p.mu.Lock()
	due := p.dirty && p.now().Sub(p.lastSave) >= p.interval
	p.mu.Unlock()
	if !due {
		return nil
	}
	return p.Save(entries)
}

// Save writes the full document unconditionally, rebuilding the entries
// array from scratch and replacing the file atomically.
func (p *Persister) Save(entries []Entry) error {
	doc := historyDocument{
		Version: documentVersion,
		Entries: make([]persistedEntry, 0, len(entries)),
	}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, persistedEntry{
			Content:   e.Content,
			Timestamp: e.Timestamp,
			Type:      string(e.Kind),
		})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("failed to replace history: %w", err)
	}

	p.mu.Lock()
	p.dirty = false
	p.lastSave = p.now()
	p.mu.Unlock()
	return nil
}

// Load reads the persisted document. It never fails the caller: a
// missing or malformed file yields an empty history. Version-1 entries
// carry no type and default to text.
func (p *Persister) Load() []Entry {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read history file", "path", p.path, "error", err)
		}
		return nil
	}

	var doc historyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("history file is malformed, starting empty", "path", p.path, "error", err)
		return nil
	}

	entries := make([]Entry, 0, len(doc.Entries))
	for _, pe := range doc.Entries {
		entries = append(entries, Entry{
			Content:   pe.Content,
			Timestamp: pe.Timestamp,
			Kind:      clipback.ParseKind(pe.Type),
		})
	}
	return entries
}

// Wipe deletes the persisted document entirely.
func (p *Persister) Wipe() error {
	err := os.Remove(p.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove history file: %w", err)
	}
	p.mu.Lock()
	p.dirty = false
	p.mu.Unlock()
	return nil
}
