package repositories

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	dbm "tripplanner/internal/models/db_models"
)

// memorySessionRepository keeps sessions for the lifetime of the process.
// Stored values are deep copies so callers never share state with the store.
type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]dbm.Session
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[uuid.UUID]dbm.Session)}
}

func (r *memorySessionRepository) Create(_ context.Context, session *dbm.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	stored, err := cloneSession(session)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = stored
	return nil
}

func (r *memorySessionRepository) GetByID(_ context.Context, id uuid.UUID) (*dbm.Session, error) {
	r.mu.RLock()
	stored, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	out, err := cloneSession(&stored)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memorySessionRepository) List(_ context.Context) ([]dbm.Session, error) {
	r.mu.RLock()
	out := make([]dbm.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		c, err := cloneSession(&s)
		if err != nil {
			r.mu.RUnlock()
			return nil, err
		}
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memorySessionRepository) Update(_ context.Context, session *dbm.Session) error {
	session.UpdatedAt = time.Now().UTC()
	stored, err := cloneSession(session)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = stored
	return nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false, nil
	}
	delete(r.sessions, id)
	return true, nil
}

func cloneSession(s *dbm.Session) (dbm.Session, error) {
	var out dbm.Session
	data, err := json.Marshal(s)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	out.DeletedAt = s.DeletedAt
	if len(s.Theme) == 0 {
		out.Theme = nil
	}
	return out, nil
}
