package service

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/storerate-backend/internal/app/model"
	"github.com/ikkim/storerate-backend/internal/app/repository"
	"github.com/ikkim/storerate-backend/pkg/logger"
	"github.com/ikkim/storerate-backend/pkg/util"
	"gorm.io/gorm"
)

const (
	listingRatingDecimals   = 2
	dashboardRatingDecimals = 1
)

// StoreView is a store as listed to admins
type StoreView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Rating       string `json:"rating"`
	TotalRatings int64  `json:"totalRatings"`
}

// UserStoreView adds the caller's own rating; nil when not rated yet
type UserStoreView struct {
	StoreView
	UserRating *int `json:"userRating"`
}

type OwnerStoreView struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	AverageRating string    `json:"averageRating"`
	TotalRatings  int64     `json:"totalRatings"`
	CreatedAt     time.Time `json:"createdAt"`
}

type OwnerDashboard struct {
	Store            OwnerStoreView           `json:"store"`
	RatingsFromUsers []model.StoreRatingEntry `json:"ratingsFromUsers"`
}

type StoreService interface {
	ListStores(ctx context.Context, filter repository.StoreFilter) ([]StoreView, error)
	ListForUser(ctx context.Context, userID uint, filter repository.StoreFilter) ([]UserStoreView, error)
	OwnerDashboard(ctx context.Context, ownerID uint) (*OwnerDashboard, error)
}

type storeService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

func NewStoreService(storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository) StoreService {
	return &storeService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

func newStoreView(s model.StoreWithRating) StoreView {
	return StoreView{
		ID:           s.ID,
		Name:         s.Name,
		Email:        s.Email,
		Address:      s.Address,
		Rating:       util.FormatRating(s.AverageRating, listingRatingDecimals),
		TotalRatings: s.TotalRatings,
	}
}

func (s *storeService) ListStores(ctx context.Context, filter repository.StoreFilter) ([]StoreView, error) {
	stores, err := s.storeRepo.ListWithRatings(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]StoreView, 0, len(stores))
	for _, store := range stores {
		views = append(views, newStoreView(store))
	}
	return views, nil
}

func (s *storeService) ListForUser(ctx context.Context, userID uint, filter repository.StoreFilter) ([]UserStoreView, error) {
	stores, err := s.storeRepo.ListWithRatings(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(stores))
	for _, store := range stores {
		ids = append(ids, store.ID)
	}
	own, err := s.ratingRepo.UserRatingsForStores(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	views := make([]UserStoreView, 0, len(stores))
	for _, store := range stores {
		view := UserStoreView{StoreView: newStoreView(store)}
		if value, ok := own[store.ID]; ok {
			v := value
			view.UserRating = &v
		}
		views = append(views, view)
	}

	logger.Debug("Stores listed for user", map[string]interface{}{
		"user_id": userID,
		"count":   len(views),
		"rated":   len(own),
	})
	return views, nil
}

func (s *storeService) OwnerDashboard(ctx context.Context, ownerID uint) (*OwnerDashboard, error) {
	store, err := s.storeRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerStoreNotFound
		}
		return nil, err
	}

	summary, err := s.ratingRepo.Aggregate(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ratingRepo.ListForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	return &OwnerDashboard{
		Store: OwnerStoreView{
			ID:            store.ID,
			Name:          store.Name,
			Email:         store.Email,
			Address:       store.Address,
			AverageRating: util.FormatRating(summary.Average, dashboardRatingDecimals),
			TotalRatings:  summary.Count,
			CreatedAt:     store.CreatedAt,
		},
		RatingsFromUsers: entries,
	}, nil
}
