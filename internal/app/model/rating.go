package model

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one user's score for one store. (user_id, store_id) is unique.
type Rating struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_user_store;index" json:"user_id"`
	StoreID   uint      `gorm:"not null;uniqueIndex:idx_ratings_user_store;index" json:"store_id"`
	Rating    int       `gorm:"not null;check:chk_ratings_range,rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Store *Store `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"store,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}

func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// RatingSummary is the derived aggregate for a store. Average is the
// unrounded mean and is 0 when Count is 0.
type RatingSummary struct {
	StoreID uint    `json:"store_id"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// StoreRatingEntry is a single rating as shown to the store owner
type StoreRatingEntry struct {
	RatingID    uint      `json:"ratingId"`
	Rating      int       `json:"rating"`
	UserID      uint      `json:"userId"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	SubmittedAt time.Time `json:"submittedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
