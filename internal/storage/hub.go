package storage

import "sync"

// Hub fans out key change notifications to in-process watchers. Backends
// publish after every successful write so open views can re-read without
// polling.
type Hub struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]WatchFunc
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]WatchFunc)}
}

// Watch registers fn for changes to key. An empty key watches every key.
// The returned function removes the registration and is safe to call twice.
func (h *Hub) Watch(key string, fn WatchFunc) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	if h.subs[key] == nil {
		h.subs[key] = make(map[int]WatchFunc)
	}
	h.subs[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[key], id)
			if len(h.subs[key]) == 0 {
				delete(h.subs, key)
			}
		})
	}
}

// Publish notifies the watchers of key and the catch-all watchers.
// Callbacks run synchronously, outside the hub lock.
func (h *Hub) Publish(key string) {
	h.mu.RLock()
	fns := make([]WatchFunc, 0, len(h.subs[key])+len(h.subs[""]))
	for _, fn := range h.subs[key] {
		fns = append(fns, fn)
	}
	if key != "" {
		for _, fn := range h.subs[""] {
			fns = append(fns, fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(key)
	}
}
