package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"retroFinder/business/finder"
	"retroFinder/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FinderRepository stores decision events and, when configured as the
// session store, the sessions themselves.
type FinderRepository struct {
	DB  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

var (
	_ finder.EventRepository   = (*FinderRepository)(nil)
	_ finder.SessionRepository = (*FinderRepository)(nil)
)

func NewFinderRepository(db *gorm.DB, ttl time.Duration) *FinderRepository {
	return &FinderRepository{DB: db, ttl: ttl, now: time.Now}
}

// ---- Events ----

func (r *FinderRepository) SaveEvent(ctx context.Context, event domain.FinderEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save finder event: %w", err)
	}

	return nil
}

// ---- Sessions ----

func (r *FinderRepository) Get(ctx context.Context, id string) (*finder.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row domain.FinderSessionState
	err := r.DB.WithContext(ctx).First(&row, "session_id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query finder_sessions: %w", err)
	}

	if r.ttl > 0 && r.now().After(row.ExpiresAt) {
		return nil, nil
	}

	var session finder.Session
	if err := json.Unmarshal(row.StateJSON, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state_json: %w", err)
	}

	return &session, nil
}

func (r *FinderRepository) Save(ctx context.Context, session finder.Session) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	row := domain.FinderSessionState{
		SessionID: session.ID,
		StateJSON: raw,
		ExpiresAt: r.now().Add(r.ttl),
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert finder_sessions: %w", err)
	}

	return nil
}

func (r *FinderRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Delete(&domain.FinderSessionState{}, "session_id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete finder session: %w", err)
	}

	return nil
}

// PurgeExpired removes sessions past their expiry and returns how many went.
func (r *FinderRepository) PurgeExpired(ctx context.Context) (int64, error) {
	if r.ttl <= 0 {
		return 0, nil
	}

	result := r.DB.WithContext(ctx).
		Where("expires_at < ?", r.now()).
		Delete(&domain.FinderSessionState{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge finder sessions: %w", result.Error)
	}

	return result.RowsAffected, nil
}
