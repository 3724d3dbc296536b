package service

import (
	"context"
	"errors"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/internal/app/repository"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"gorm.io/gorm"
)

type RatingService interface {
	Submit(ctx context.Context, userID, storeID uint, value int) (*model.Rating, error)
	Update(ctx context.Context, userID, storeID uint, value int) (*model.Rating, error)
	AverageForStore(ctx context.Context, storeID uint) (model.RatingSummary, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
	}
}

// Submit records a first rating. A second submit for the same store fails;
// changes go through Update.
func (s *ratingService) Submit(ctx context.Context, userID, storeID uint, value int) (*model.Rating, error) {
	if !model.ValidRating(value) {
		return nil, ErrInvalidRating
	}

	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	existing, err := s.ratingRepo.FindByUserAndStore(ctx, userID, storeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Rating submit rejected: already rated", map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
		})
		return nil, ErrAlreadyRated
	}

	rating := &model.Rating{UserID: userID, StoreID: storeID, Rating: value}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrAlreadyRated
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrStoreNotFound
		}
		logger.Error("Failed to submit rating", err, map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
		})
		return nil, err
	}

	logger.Info("Rating submitted", map[string]interface{}{
		"rating_id": rating.ID,
		"user_id":   userID,
		"store_id":  storeID,
		"rating":    value,
	})
	return rating, nil
}

func (s *ratingService) Update(ctx context.Context, userID, storeID uint, value int) (*model.Rating, error) {
	if !model.ValidRating(value) {
		return nil, ErrInvalidRating
	}

	rows, err := s.ratingRepo.UpdateValue(ctx, userID, storeID, value)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotRated
	}

	rating, err := s.ratingRepo.FindByUserAndStore(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	logger.Info("Rating updated", map[string]interface{}{
		"rating_id": rating.ID,
		"user_id":   userID,
		"store_id":  storeID,
		"rating":    value,
	})
	return rating, nil
}

func (s *ratingService) AverageForStore(ctx context.Context, storeID uint) (model.RatingSummary, error) {
	return s.ratingRepo.Aggregate(ctx, storeID)
}
