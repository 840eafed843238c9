package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spektr-org/crashlens/engine"
	"github.com/spektr-org/crashlens/render/echarts"
	"github.com/spektr-org/crashlens/views"
)

// session is one browser's dashboard: its own FilterState over the shared
// read-only dataset.
type session struct {
	ID      string
	Created time.Time

	dash  *engine.Dashboard
	page  *echarts.Page
	views *views.Set
}

// sessionStore keeps sessions in memory, keyed by uuid.
type sessionStore struct {
	ds       *engine.Dataset
	opts     []engine.Option
	pageOpts []echarts.Option

	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionStore(ds *engine.Dataset, opts []engine.Option, pageOpts []echarts.Option) *sessionStore {
	return &sessionStore{
		ds:       ds,
		opts:     opts,
		pageOpts: pageOpts,
		sessions: make(map[string]*session),
	}
}

func (s *sessionStore) create() *session {
	dash := engine.NewDashboard(s.ds, s.opts...)
	page := echarts.NewPage(s.pageOpts...)
	sess := &session{
		ID:      uuid.NewString(),
		Created: time.Now(),
		dash:    dash,
		page:    page,
		views:   views.Attach(dash, page),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *sessionStore) get(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *sessionStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *sessionStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
