package main

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DuarteFaria/clipz/clipback"
)

// ErrInvalidIndex is returned for a rank of 0 or beyond the entry count.
var ErrInvalidIndex = errors.New("invalid index")

// imageDupWindow is how far back Add looks for a byte-identical image
// before rejecting a capture as a near-duplicate. Tuned empirically for
// repeated-screenshot suppression; see clipback.CompareHead for the
// comparison heuristic itself.
var imageDupWindow = 30 * time.Second

// Applier sets the live clipboard from stored content; satisfied by
// clipback.Classifier.
type Applier interface {
	Apply(content string, kind clipback.Kind) error
}

// History is the bounded, ordered entry store. Entries are kept oldest
// first; the tail is the logical current clipboard. Every operation
// holds the mutex: the store is shared between the poller goroutine and
// the command loop.
type History struct {
	mu         sync.Mutex
	entries    []Entry
	maxEntries int

	images  *clipback.ImageStore
	applier Applier

	onDirty func()

	now func() time.Time
}

func NewHistory(maxEntries int, images *clipback.ImageStore, applier Applier) *History {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &History{
		maxEntries: maxEntries,
		images:     images,
		applier:    applier,
		now:        time.Now,
	}
}

// SetOnDirty registers the persistence hook, invoked after every
// mutation with no locks held. Subscriber notification happens one
// layer up so command acks precede their entries push.
func (h *History) SetOnDirty(fn func()) { h.onDirty = fn }

func (h *History) changed() {
	if h.onDirty != nil {
		h.onDirty()
	}
}

// Seed replaces the store content from the persisted document at
// startup, trimming to capacity from the oldest end. No hooks fire.
func (h *History) Seed(entries []Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(entries) > h.maxEntries {
		entries = entries[len(entries)-h.maxEntries:]
	}
	h.entries = append([]Entry(nil), entries...)
}

// Add appends a classified payload as the newest entry. It rejects exact
// (content, kind) duplicates, and image payloads whose scratch file is
// byte-identical to one captured within imageDupWindow. Reports whether
// the store changed.
func (h *History) Add(p *clipback.Payload) bool {
	h.mu.Lock()

	for _, e := range h.entries {
		if e.Content == p.Content && e.Kind == p.Kind {
			h.mu.Unlock()
			return false
		}
	}

	if p.Kind == clipback.KindImage && h.isRecentImageDup(p.Content) {
		h.mu.Unlock()
		// The rejected capture's own scratch file is garbage now.
		h.freeScratch(Entry{Content: p.Content, Kind: clipback.KindImage})
		return false
	}

	var evicted *Entry
	if len(h.entries) >= h.maxEntries {
		e := h.entries[0]
		evicted = &e
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, Entry{
		Content:   p.Content,
		Timestamp: h.now().UnixMilli(),
		Kind:      p.Kind,
	})
	h.mu.Unlock()

	if evicted != nil {
		h.freeScratch(*evicted)
	}
	h.changed()
	return true
}

// isRecentImageDup scans image entries captured inside the window for
// byte-identical scratch content. Caller holds the mutex.
func (h *History) isRecentImageDup(path string) bool {
	if h.images == nil || !h.images.Owns(path) {
		return false
	}
	cutoff := h.now().Add(-imageDupWindow).UnixMilli()
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		// Select reorders entries without refreshing timestamps, so
		// recency is not monotonic in slice order; scan every entry.
		if e.Timestamp < cutoff || e.Kind != clipback.KindImage || !h.images.Owns(e.Content) {
			continue
		}
		if h.images.Compare(e.Content, path) {
			return true
		}
	}
	return false
}

// SelectByRank re-applies the entry at rank (1 = most recent) to the
// live clipboard and moves it to the most-recent position. The entry
// count never changes.
func (h *History) SelectByRank(rank int) (Entry, error) {
	h.mu.Lock()
	idx, err := h.indexForRank(rank)
	if err != nil {
		h.mu.Unlock()
		return Entry{}, err
	}
	e := h.entries[idx]
	h.entries = append(h.entries[:idx], h.entries[idx+1:]...)
	h.entries = append(h.entries, e)
	h.mu.Unlock()

	if h.applier != nil {
		// A failed apply is transient; the reorder already happened and
		// the next poll cycle will converge.
		if err := h.applier.Apply(e.Content, e.Kind); err != nil {
			logger.Warn("failed to apply entry to clipboard", "error", err)
		}
	}
	h.changed()
	return e, nil
}

// RemoveByRank deletes the entry at rank. Rank 1 removes the current
// tail like any other rank; the previous rank-2 entry becomes current.
func (h *History) RemoveByRank(rank int) error {
	h.mu.Lock()
	idx, err := h.indexForRank(rank)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	e := h.entries[idx]
	h.entries = append(h.entries[:idx], h.entries[idx+1:]...)
	h.mu.Unlock()

	h.freeScratch(e)
	h.changed()
	return nil
}

// Clear deletes every entry except the current tail. No-op with one or
// fewer entries.
func (h *History) Clear() {
	h.mu.Lock()
	if len(h.entries) <= 1 {
		h.mu.Unlock()
		return
	}
	removed := h.entries[:len(h.entries)-1]
	h.entries = []Entry{h.entries[len(h.entries)-1]}
	h.mu.Unlock()

	for _, e := range removed {
		h.freeScratch(e)
	}
	h.changed()
}

// Wipe deletes every entry. Unlike Clear this is a full reset; the
// caller also wipes the persisted document.
func (h *History) Wipe() {
	h.mu.Lock()
	removed := h.entries
	h.entries = nil
	h.mu.Unlock()

	for _, e := range removed {
		h.freeScratch(e)
	}
	h.changed()
}

// Snapshot returns a copy of the entries, oldest first.
func (h *History) Snapshot() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Count returns the number of retained entries.
func (h *History) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// indexForRank maps a 1-based most-recent-first rank onto the oldest
// first slice. Caller holds the mutex.
func (h *History) indexForRank(rank int) (int, error) {
	if rank < 1 || rank > len(h.entries) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidIndex, rank)
	}
	return len(h.entries) - rank, nil
}

func (h *History) freeScratch(e Entry) {
	if e.Kind != clipback.KindImage || h.images == nil {
		return
	}
	h.images.Remove(e.Content)
}
