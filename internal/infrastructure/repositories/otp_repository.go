package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aswin1661/looms-petals/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// DBOtpVerification represents the database model for OtpVerification.
// Email is deliberately not unique: historical rows for the same address
// may coexist until issuance or cleanup removes them.
type DBOtpVerification struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"index;size:255"`
	Otp       string `gorm:"size:6"`
	IsUsed    bool
	ExpiresAt time.Time
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBOtpVerification) TableName() string {
	return "otp_verifications"
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, otp *domain.OtpVerification) error {
	row := &DBOtpVerification{
		Email:     strings.ToLower(otp.Email),
		Otp:       otp.Code,
		IsUsed:    otp.IsUsed,
		ExpiresAt: otp.ExpiresAt.UTC(),
		CreatedAt: otp.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	otp.ID = row.ID
	return nil
}

// FindLatest implements domain.OTPRepository. Ties on the same email/code
// pair are broken by the newest created_at.
func (r *OTPRepositoryImpl) FindLatest(ctx context.Context, email, code string) (*domain.OtpVerification, error) {
	return r.findLatest(ctx, email, code, false)
}

// FindLatestUsed implements domain.OTPRepository
func (r *OTPRepositoryImpl) FindLatestUsed(ctx context.Context, email, code string) (*domain.OtpVerification, error) {
	return r.findLatest(ctx, email, code, true)
}

func (r *OTPRepositoryImpl) findLatest(ctx context.Context, email, code string, usedOnly bool) (*domain.OtpVerification, error) {
	q := r.db.WithContext(ctx).
		Where("email = ? AND otp = ?", strings.ToLower(email), code)
	if usedOnly {
		q = q.Where("is_used = ?", true)
	}

	var row DBOtpVerification
	err := q.Order("created_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPInvalid
		}
		return nil, err
	}
	return r.dbToDomain(&row), nil
}

// MarkUsed implements domain.OTPRepository
func (r *OTPRepositoryImpl) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBOtpVerification{}).
		Where("id = ?", id).Update("is_used", true).Error
}

// DeleteByID implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBOtpVerification{}).Error
}

// DeleteByEmail implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		Delete(&DBOtpVerification{}).Error
}

// DeleteOlderThan implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff.UTC()).
		Delete(&DBOtpVerification{})
	return res.RowsAffected, res.Error
}

func (r *OTPRepositoryImpl) dbToDomain(row *DBOtpVerification) *domain.OtpVerification {
	return &domain.OtpVerification{
		ID:        row.ID,
		Email:     row.Email,
		Code:      row.Otp,
		IsUsed:    row.IsUsed,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}
}
