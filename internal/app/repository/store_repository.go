package repository

import (
	"context"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"gorm.io/gorm"
)

// StoreFilter narrows a store listing
type StoreFilter struct {
	Name      string
	Email     string
	Address   string
	SortBy    string
	SortOrder SortOrder
}

var storeSortColumns = map[string]string{
	"name":           "stores.name",
	"email":          "stores.email",
	"address":        "stores.address",
	"rating":         "average_rating",
	"average_rating": "average_rating",
	"averageRating":  "average_rating",
	"created_at":     "stores.created_at",
	"createdAt":      "stores.created_at",
}

const storeWithRatingColumns = "stores.id, stores.name, stores.email, stores.address, stores.owner_id, " +
	"stores.created_at, stores.updated_at, " +
	"CAST(COALESCE(AVG(ratings.rating), 0) AS FLOAT) AS average_rating, " +
	"COUNT(ratings.id) AS total_ratings"

type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	CreateWithOwner(ctx context.Context, owner *model.User, store *model.Store) error
	FindByID(ctx context.Context, id uint) (*model.Store, error)
	FindByOwnerID(ctx context.Context, ownerID uint) (*model.Store, error)
	FindWithRating(ctx context.Context, id uint) (*model.StoreWithRating, error)
	ListWithRatings(ctx context.Context, filter StoreFilter) ([]model.StoreWithRating, error)
	Count(ctx context.Context) (int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"name":     store.Name,
		"owner_id": store.OwnerID,
	})

	if err := r.db.WithContext(ctx).Omit("Owner").Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"name":     store.Name,
			"owner_id": store.OwnerID,
		})
		return err
	}

	logger.Debug("Store created in database", map[string]interface{}{
		"store_id": store.ID,
		"owner_id": store.OwnerID,
	})
	return nil
}

// CreateWithOwner inserts a store owner account and its store in one
// transaction. Either both rows exist afterwards or neither does.
func (r *storeRepository) CreateWithOwner(ctx context.Context, owner *model.User, store *model.Store) error {
	logger.Debug("Creating store with owner in database", map[string]interface{}{
		"name":        store.Name,
		"owner_email": owner.Email,
	})

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Store").Create(owner).Error; err != nil {
			logger.Error("Failed to create store owner in transaction", err, map[string]interface{}{
				"owner_email": owner.Email,
			})
			return err
		}

		store.OwnerID = owner.ID
		if err := tx.Omit("Owner").Create(store).Error; err != nil {
			logger.Error("Failed to create store in transaction", err, map[string]interface{}{
				"name":     store.Name,
				"owner_id": owner.ID,
			})
			return err
		}

		logger.Debug("Store with owner created in database", map[string]interface{}{
			"store_id": store.ID,
			"owner_id": owner.ID,
		})
		return nil
	})
}

func (r *storeRepository) FindByID(ctx context.Context, id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByOwnerID(ctx context.Context, ownerID uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) withRatings(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("stores").
		Select(storeWithRatingColumns).
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id")
}

func (r *storeRepository) FindWithRating(ctx context.Context, id uint) (*model.StoreWithRating, error) {
	var rows []model.StoreWithRating
	if err := r.withRatings(ctx).Where("stores.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *storeRepository) ListWithRatings(ctx context.Context, filter StoreFilter) ([]model.StoreWithRating, error) {
	logger.Debug("Listing stores with ratings", map[string]interface{}{
		"name":    filter.Name,
		"email":   filter.Email,
		"address": filter.Address,
		"sort_by": filter.SortBy,
	})

	query := r.withRatings(ctx)
	query = whereContains(query, "stores.name", filter.Name)
	query = whereContains(query, "stores.email", filter.Email)
	query = whereContains(query, "stores.address", filter.Address)

	column := resolveSort(storeSortColumns, filter.SortBy, "stores.created_at")
	order := filter.SortOrder
	if order == "" {
		order = SortDesc
	}

	stores := []model.StoreWithRating{}
	if err := query.Order(column + " " + string(order)).Order("stores.id " + string(order)).Scan(&stores).Error; err != nil {
		logger.Error("Failed to list stores with ratings", err)
		return nil, err
	}

	logger.Debug("Stores listed", map[string]interface{}{
		"count": len(stores),
	})
	return stores, nil
}

func (r *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Store{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
