package service

import (
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
)

var (
	ErrEmailAlreadyExists = apperrors.Conflict(apperrors.AuthEmailAlreadyExists, "User with this email already exists")
	ErrInvalidCredentials = apperrors.Authentication(apperrors.AuthInvalidCredentials, "Invalid email or password")
	ErrWrongPortal        = apperrors.Authorization(apperrors.AuthzWrongPortal, "Access denied. This login is not available for your account type.")
	ErrUserNotFound       = apperrors.NotFound(apperrors.UserNotFound, "User not found")
	ErrPasswordIncorrect  = apperrors.Authentication(apperrors.AuthPasswordIncorrect, "Current password is incorrect")
	ErrPasswordUnchanged  = apperrors.Validation("New password must be different from current password")
	ErrInvalidRole        = apperrors.Validation("Role must be one of: admin, user, store_owner")

	ErrStoreNotFound        = apperrors.NotFound(apperrors.StoreNotFound, "Store not found")
	ErrOwnerStoreNotFound   = apperrors.NotFound(apperrors.StoreNotFound, "Store not found for this owner")
	ErrOwnerNotFound        = apperrors.NotFound(apperrors.StoreOwnerNotFound, "Owner not found")
	ErrOwnerRoleRequired    = apperrors.Conflict(apperrors.StoreOwnerRoleNeeded, "Owner must have store_owner role")
	ErrOwnerAlreadyHasStore = apperrors.Conflict(apperrors.StoreOwnerHasStore, "This store owner already has a store")

	ErrAlreadyRated  = apperrors.Conflict(apperrors.RatingAlreadyExists, "You have already rated this store. Use the update endpoint to change your rating.")
	ErrNotRated      = apperrors.NotFound(apperrors.RatingNotFound, "You have not rated this store yet. Use the submit endpoint to add a rating.")
	ErrInvalidRating = apperrors.New(apperrors.KindValidation, apperrors.RatingInvalidValue, "Rating must be between 1 and 5")

	ErrReportStorageDisabled = apperrors.New(apperrors.KindUnavailable, apperrors.ReportStorageDisabled, "Report storage is not configured")
)
