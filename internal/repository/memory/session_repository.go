package memory

import (
	"context"
	"sync"
	"time"

	"retroFinder/business/finder"
)

type entry struct {
	session   finder.Session
	expiresAt time.Time
}

// SessionRepository keeps sessions in process memory. A zero ttl never expires.
type SessionRepository struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

var _ finder.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*finder.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.data[id]
	if !ok || r.expired(e) {
		return nil, nil
	}

	s := e.session
	return &s, nil
}

func (r *SessionRepository) Save(ctx context.Context, session finder.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[session.ID] = entry{
		session:   session,
		expiresAt: r.now().Add(r.ttl),
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, id)
	return nil
}

func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, e := range r.data {
		if r.expired(e) {
			delete(r.data, id)
			n++
		}
	}
	return n, nil
}

func (r *SessionRepository) expired(e entry) bool {
	return r.ttl > 0 && r.now().After(e.expiresAt)
}
