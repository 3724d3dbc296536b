package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevokedTokenRepository interface {
	// Insert records a revoked token digest. Inserting a digest twice is not an error.
	Insert(ctx context.Context, tokenHash string, expiresAt, invalidatedAt time.Time) error
	// Lookup returns the token's expiry when the digest is in the ledger
	Lookup(ctx context.Context, tokenHash string) (time.Time, bool, error)
	// DeleteExpired removes rows invalidated before invalidatedBefore whose
	// token expired before expiredBefore
	DeleteExpired(ctx context.Context, invalidatedBefore, expiredBefore time.Time) (int64, error)
}

type revokedTokenRepository struct {
	db *gorm.DB
}

func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepository {
	return &revokedTokenRepository{db: db}
}

func (r *revokedTokenRepository) Insert(ctx context.Context, tokenHash string, expiresAt, invalidatedAt time.Time) error {
	entry := &model.RevokedToken{
		TokenHash:     tokenHash,
		ExpiresAt:     expiresAt,
		InvalidatedAt: invalidatedAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_hash"}}, DoNothing: true}).
		Create(entry).Error
	if err != nil {
		logger.Error("Failed to insert revoked token", err)
		return err
	}
	return nil
}

func (r *revokedTokenRepository) Lookup(ctx context.Context, tokenHash string) (time.Time, bool, error) {
	var entry model.RevokedToken
	err := r.db.WithContext(ctx).
		Select("expires_at").
		Where("token_hash = ?", tokenHash).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return entry.ExpiresAt, true, nil
}

func (r *revokedTokenRepository) DeleteExpired(ctx context.Context, invalidatedBefore, expiredBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("invalidated_at < ? AND expires_at < ?", invalidatedBefore, expiredBefore).
		Delete(&model.RevokedToken{})
	if result.Error != nil {
		logger.Error("Failed to delete expired revoked tokens", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
