package repository

import (
	"context"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	FindByUserAndStore(ctx context.Context, userID, storeID uint) (*model.Rating, error)
	// UpdateValue changes an existing rating in place and returns the
	// number of rows it touched.
	UpdateValue(ctx context.Context, userID, storeID uint, value int) (int64, error)
	Aggregate(ctx context.Context, storeID uint) (model.RatingSummary, error)
	ListForStore(ctx context.Context, storeID uint) ([]model.StoreRatingEntry, error)
	UserRatingsForStores(ctx context.Context, userID uint, storeIDs []uint) (map[uint]int, error)
	Count(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	logger.Debug("Creating rating in database", map[string]interface{}{
		"user_id":  rating.UserID,
		"store_id": rating.StoreID,
		"rating":   rating.Rating,
	})

	if err := r.db.WithContext(ctx).Omit("User", "Store").Create(rating).Error; err != nil {
		logger.Debug("Rating insert rejected", map[string]interface{}{
			"user_id":  rating.UserID,
			"store_id": rating.StoreID,
			"error":    err.Error(),
		})
		return err
	}
	return nil
}

func (r *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uint) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) UpdateValue(ctx context.Context, userID, storeID uint, value int) (int64, error) {
	logger.Debug("Updating rating in database", map[string]interface{}{
		"user_id":  userID,
		"store_id": storeID,
		"rating":   value,
	})

	result := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Update("rating", value)
	if result.Error != nil {
		logger.Error("Failed to update rating in database", result.Error, map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *ratingRepository) Aggregate(ctx context.Context, storeID uint) (model.RatingSummary, error) {
	var row struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("CAST(COALESCE(AVG(rating), 0) AS FLOAT) AS average, COUNT(id) AS count").
		Where("store_id = ?", storeID).
		Scan(&row).Error
	if err != nil {
		return model.RatingSummary{}, err
	}
	return model.RatingSummary{StoreID: storeID, Average: row.Average, Count: row.Count}, nil
}

// ListForStore returns the store's ratings with the rater, newest first
func (r *ratingRepository) ListForStore(ctx context.Context, storeID uint) ([]model.StoreRatingEntry, error) {
	entries := []model.StoreRatingEntry{}
	err := r.db.WithContext(ctx).
		Table("ratings").
		Select("ratings.id AS rating_id, ratings.rating, users.id AS user_id, users.name AS user_name, " +
			"users.email AS user_email, ratings.created_at AS submitted_at, ratings.updated_at").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.created_at DESC").
		Order("ratings.id DESC").
		Scan(&entries).Error
	if err != nil {
		logger.Error("Failed to list ratings for store", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return entries, nil
}

// UserRatingsForStores returns storeID -> rating for the stores among
// storeIDs that userID has rated
func (r *ratingRepository) UserRatingsForStores(ctx context.Context, userID uint, storeIDs []uint) (map[uint]int, error) {
	result := make(map[uint]int, len(storeIDs))
	if len(storeIDs) == 0 {
		return result, nil
	}

	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Select("store_id", "rating").
		Where("user_id = ? AND store_id IN ?", userID, storeIDs).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	for _, rating := range ratings {
		result[rating.StoreID] = rating.Rating
	}
	return result, nil
}

func (r *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Rating{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
