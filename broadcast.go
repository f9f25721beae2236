package main

import (
	"encoding/json"
	"io"
	"sync"
)

// subscriber is one attached protocol stream. The encoder terminates
// every message with a newline, which is exactly the wire framing; the
// mutex keeps pushes and direct responses from interleaving.
type subscriber struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (s *subscriber) send(msg any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(msg)
}

// Broadcaster fans entry-store notifications out to every connected
// protocol subscriber: the stdio stream and any TCP connections.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[int]*subscriber
	nextID int
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]*subscriber)}
}

// Add registers a stream and returns its subscriber handle and id.
func (b *Broadcaster) Add(w io.Writer) (*subscriber, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub := &subscriber{enc: json.NewEncoder(w)}
	b.subs[b.nextID] = sub
	return sub, b.nextID
}

// Remove drops a subscriber; its stream gets no further pushes.
func (b *Broadcaster) Remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Broadcast sends msg to every subscriber. Write failures are ignored
// here; a dead stream is cleaned up when its command loop exits.
func (b *Broadcaster) Broadcast(msg any) {
	b.mu.RLock()
	subs := make([]*subscriber, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		_ = sub.send(msg)
	}
}
