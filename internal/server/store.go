package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/sink"
)

// entry is one browser session. Handlers hold mu for the whole request so
// controller transitions for a session never interleave.
type entry struct {
	mu sync.Mutex

	flow      *session.Flow
	ctrl      *controller.Controller
	csrf      string
	submitted *sink.Submission

	// last login answers, used to refill the login page.
	rollNumber string
	name       string

	// flash messages shown once on the next page.
	errors  []string
	notices []string

	lastSeen time.Time
}

func (e *entry) flash() (errs, notices []string) {
	errs, notices = e.errors, e.notices
	e.errors, e.notices = nil, nil
	return errs, notices
}

func (e *entry) reset() {
	e.flow.Logout()
	e.ctrl = nil
	e.submitted = nil
}

type store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	newFlow func() *session.Flow
}

func newStore(ttl time.Duration, now func() time.Time, newFlow func() *session.Flow) *store {
	return &store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     now,
		newFlow: newFlow,
	}
}

// get returns a live entry. Expired entries are dropped.
func (s *store) get(id string) (*entry, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl {
		delete(s.entries, id)
		return nil, false
	}
	e.lastSeen = now
	return e, true
}

func (s *store) create() (string, *entry) {
	id := uuid.NewString()
	e := &entry{
		flow:     s.newFlow(),
		csrf:     uuid.NewString(),
		lastSeen: s.now(),
	}
	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()
	return id, e
}

func (s *store) delete(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// sweep drops expired entries and reports how many were removed.
func (s *store) sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *store) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
