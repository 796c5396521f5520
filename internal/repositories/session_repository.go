package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tripplanner/internal/models/db_models"
)

type SessionRepository interface {
	Create(ctx context.Context, session *dbm.Session) error
	// GetByID returns nil, nil when no session has the id.
	GetByID(ctx context.Context, id uuid.UUID) (*dbm.Session, error)
	// List returns sessions newest first.
	List(ctx context.Context) ([]dbm.Session, error)
	Update(ctx context.Context, session *dbm.Session) error
	// Delete reports whether a session was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *dbm.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*dbm.Session, error) {
	var session dbm.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) List(ctx context.Context) ([]dbm.Session, error) {
	var sessions []dbm.Session
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *dbm.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&dbm.Session{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
