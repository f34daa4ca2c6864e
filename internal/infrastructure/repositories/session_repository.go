package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aswin1661/looms-petals/domain"
)

// DBSession is the row shape shared by both session tables.
type DBSession struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index"`
	SessionToken string `gorm:"uniqueIndex;size:128"`
	ExpiresAt    time.Time
	CreatedAt    time.Time `gorm:"index"`
}

// DBUserSession backs the storefront session namespace.
type DBUserSession struct {
	DBSession `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (DBUserSession) TableName() string { return "user_sessions" }

// DBAdminSession backs the dashboard session namespace. Tokens from the two
// tables are never interchangeable.
type DBAdminSession struct {
	DBSession `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (DBAdminSession) TableName() string { return "admin_sessions" }

// SessionRepositoryImpl implements domain.SessionRepository over one of the
// two session tables.
type SessionRepositoryImpl struct {
	db    *gorm.DB
	table string
}

// NewUserSessionRepository creates a repository over user_sessions.
func NewUserSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db, table: DBUserSession{}.TableName()}
}

// NewAdminSessionRepository creates a repository over admin_sessions.
func NewAdminSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db, table: DBAdminSession{}.TableName()}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	row := DBSession{
		UserID:       session.UserID,
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt.UTC(),
		CreatedAt:    session.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Table(r.table).Create(&row).Error; err != nil {
		return err
	}
	session.ID = row.ID
	return nil
}

// FindByToken implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	var row DBSession
	err := r.db.WithContext(ctx).Table(r.table).
		Where("session_token = ?", token).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, err
	}
	return &domain.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		Token:     row.SessionToken,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// DeleteByToken implements domain.SessionRepository. Deleting an absent
// token is not an error.
func (r *SessionRepositoryImpl) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Table(r.table).
		Where("session_token = ?", token).Delete(&DBSession{}).Error
}

// DeleteForUser implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Table(r.table).
		Where("user_id = ?", userID).Delete(&DBSession{}).Error
}

// PruneToNewest implements domain.SessionRepository. IDs are collected
// first and then deleted, matching the store's row-at-a-time atomicity:
// a concurrent insert between the two steps is tolerated.
func (r *SessionRepositoryImpl) PruneToNewest(ctx context.Context, userID uint, keep int) (int64, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Table(r.table).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) <= keep {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Table(r.table).
		Where("id IN ?", ids[keep:]).Delete(&DBSession{})
	return res.RowsAffected, res.Error
}

// DeleteExpiredForUser implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteExpiredForUser(ctx context.Context, userID uint, now time.Time) error {
	return r.db.WithContext(ctx).Table(r.table).
		Where("user_id = ? AND expires_at < ?", userID, now.UTC()).
		Delete(&DBSession{}).Error
}
