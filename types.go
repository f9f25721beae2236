package main

import (
	"github.com/DuarteFaria/clipz/clipback"
)

// Entry is one retained clipboard item. Content holds text, or a
// filesystem path for file and image kinds. Entries are immutable once
// created; only their position in the history changes.
type Entry struct {
	Content   string
	Timestamp int64 // unix milliseconds
	Kind      clipback.Kind
}

// persistedEntry is the on-disk shape of an Entry. Version-1 documents
// lack the type field; readers default it to text.
type persistedEntry struct {
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type,omitempty"`
}

// historyDocument is the versioned persisted file.
type historyDocument struct {
	Version int              `json:"version"`
	Entries []persistedEntry `json:"entries"`
}

const documentVersion = 2

// entryMessage is one entry as serialized on the protocol: id is the
// 1-based rank counted from most recent, and isCurrent marks rank 1.
type entryMessage struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type"`
	IsCurrent bool   `json:"isCurrent"`
}

// Protocol response shapes, one JSON object per line. Split per message
// so an entries listing always carries its data array, even when empty.
type readyMessage struct {
	Type string `json:"type"`
}

type entriesMessage struct {
	Type string         `json:"type"`
	Data []entryMessage `json:"data"`
}

type indexMessage struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

type textMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Protocol message types.
const (
	msgReady         = "ready"
	msgEntries       = "entries"
	msgSelectSuccess = "select-success"
	msgRemoveSuccess = "remove-success"
	msgSuccess       = "success"
	msgError         = "error"
)

// entryMessages renders entries (oldest first) most-recent first with
// ranks starting at 1. This is the single listing contract every caller
// must respect.
func entryMessages(entries []Entry) []entryMessage {
	out := make([]entryMessage, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		rank := len(entries) - i
		out = append(out, entryMessage{
			ID:        rank,
			Content:   e.Content,
			Timestamp: e.Timestamp,
			Type:      string(e.Kind),
			IsCurrent: rank == 1,
		})
	}
	return out
}
