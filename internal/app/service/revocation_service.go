package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"github.com/ikkim/storerate-backend/pkg/util"
)

// RevocationCache is an optional tier shared between replicas
type RevocationCache interface {
	Add(ctx context.Context, tokenHash string, expiresAt time.Time) error
	Lookup(ctx context.Context, tokenHash string) (time.Time, bool, error)
}

type RevocationService interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	SweepExpired(ctx context.Context) (int64, error)
}

type revocationService struct {
	repo      repository.RevokedTokenRepository
	cache     RevocationCache
	retention time.Duration
	now       func() time.Time

	mu      sync.RWMutex
	revoked map[string]time.Time // token digest -> token expiry
}

// NewRevocationService builds the logout ledger. cache may be nil.
func NewRevocationService(
	repo repository.RevokedTokenRepository,
	cache RevocationCache,
	retention time.Duration,
) RevocationService {
	return &revocationService{
		repo:      repo,
		cache:     cache,
		retention: retention,
		now:       time.Now,
		revoked:   make(map[string]time.Time),
	}
}

func (s *revocationService) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	hash := util.HashToken(token)

	if err := s.repo.Insert(ctx, hash, expiresAt, s.now()); err != nil {
		return fmt.Errorf("failed to record revoked token: %w", err)
	}
	s.remember(hash, expiresAt)

	if s.cache != nil {
		if err := s.cache.Add(ctx, hash, expiresAt); err != nil {
			logger.Warn("Revoked token not shared with cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	logger.Info("Token revoked", map[string]interface{}{
		"expires_at": expiresAt,
	})
	return nil
}

func (s *revocationService) IsRevoked(ctx context.Context, token string) (bool, error) {
	hash := util.HashToken(token)

	s.mu.RLock()
	_, ok := s.revoked[hash]
	s.mu.RUnlock()
	if ok {
		return true, nil
	}

	if s.cache != nil {
		expiresAt, found, err := s.cache.Lookup(ctx, hash)
		if err != nil {
			// the ledger below is authoritative
			logger.Warn("Revocation cache lookup failed, using database", map[string]interface{}{
				"error": err.Error(),
			})
		} else if found {
			s.remember(hash, expiresAt)
			return true, nil
		}
	}

	expiresAt, found, err := s.repo.Lookup(ctx, hash)
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	if !found {
		return false, nil
	}
	s.remember(hash, expiresAt)
	return true, nil
}

// SweepExpired removes ledger rows past the retention window whose token
// has also expired, and forgets expired tokens in memory.
func (s *revocationService) SweepExpired(ctx context.Context) (int64, error) {
	now := s.now()

	deleted, err := s.repo.DeleteExpired(ctx, now.Add(-s.retention), now)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep revoked tokens: %w", err)
	}

	pruned := 0
	s.mu.Lock()
	for hash, expiresAt := range s.revoked {
		if expiresAt.Before(now) {
			delete(s.revoked, hash)
			pruned++
		}
	}
	s.mu.Unlock()

	logger.Info("Revoked token sweep completed", map[string]interface{}{
		"deleted_rows":   deleted,
		"pruned_entries": pruned,
	})
	return deleted, nil
}

func (s *revocationService) remember(hash string, expiresAt time.Time) {
	s.mu.Lock()
	s.revoked[hash] = expiresAt
	s.mu.Unlock()
}
