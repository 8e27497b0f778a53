package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makeadle/dle-service/internal/game"
)

// Entry is one hosted game session.
type Entry struct {
	ID       string
	Slug     string
	Session  *game.Session
	Created  time.Time
	LastSeen time.Time
}

// MemoryStore keeps hosted sessions in memory, keyed by a random id.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Entry
	now      func() time.Time
	newID    func() string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Entry),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Add stores s and returns its entry.
func (m *MemoryStore) Add(slug string, s *game.Session) Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e := &Entry{ID: m.newID(), Slug: slug, Session: s, Created: now, LastSeen: now}
	m.sessions[e.ID] = e
	return *e
}

// Get retrieves a session by id and marks it as seen.
func (m *MemoryStore) Get(id string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return Entry{}, false
	}
	e.LastSeen = m.now()
	return *e, true
}

// Delete removes a session. It reports whether the id was known.
func (m *MemoryStore) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sessions[id]
	delete(m.sessions, id)
	return ok
}

// List returns the entries ordered by creation time.
func (m *MemoryStore) List() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, 0, len(m.sessions))
	for _, e := range m.sessions {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Created.Before(result[j].Created)
	})
	return result
}

// Len reports how many sessions are hosted.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictIdle drops sessions not seen since before and returns how many went.
func (m *MemoryStore) EvictIdle(before time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, e := range m.sessions {
		if e.LastSeen.Before(before) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}
