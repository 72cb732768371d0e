package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nyzbk/insta-carousel-v2/internal/apperr"
)

const DefaultTTL = 24 * time.Hour

type entry struct {
	sess     *Session
	lastSeen time.Time
}

// Store keeps sessions in memory and drops those idle longer than ttl.
type Store struct {
	deps Deps
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewStore(deps Deps, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		deps:     deps,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	id := uuid.NewString()
	sess := newSession(id, s.deps)
	s.sessions[id] = &entry{sess: sess, lastSeen: s.now()}
	s.deps.Log.Info("session created", "session", id, "active", len(s.sessions))
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	e, ok := s.sessions[id]
	if !ok {
		return nil, apperr.NotFound("Сессия не найдена.")
	}
	e.lastSeen = s.now()
	return e.sess, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return apperr.NotFound("Сессия не найдена.")
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) sweepLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			s.deps.Log.Debug("session expired", "session", id)
		}
	}
}
