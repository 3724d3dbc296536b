package errors

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ParseError converts an error that did not come from the service layer into
// an AppError. Database details are never copied into the message.
func ParseError(err error, operation string) *AppError {
	if err == nil {
		return Internal(defaultMessage(operation), nil)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &AppError{Kind: KindNotFound, Code: ResourceNotFound, Message: "Resource not found", Err: err}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Kind: KindUnavailable, Code: InternalUnavailable, Message: "Request timed out. Please try again.", Err: err}
	}

	if IsUniqueViolation(err) {
		return parseDuplicateKeyError(err)
	}

	errLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(errLower, "foreign key constraint") {
		return &AppError{Kind: KindNotFound, Code: ResourceNotFound, Message: "Referenced resource not found", Err: err}
	}

	if errors.Is(err, gorm.ErrCheckConstraintViolated) || strings.Contains(errLower, "check constraint") {
		return &AppError{Kind: KindValidation, Code: ValidationInvalidInput, Message: "Validation failed", Err: err}
	}

	return &AppError{Kind: KindInternal, Code: InternalServerError, Message: defaultMessage(operation), Err: err}
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// PostgreSQL or SQLite, translated by gorm or not.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errLower := strings.ToLower(err.Error())
	return strings.Contains(errLower, "duplicate key") ||
		strings.Contains(errLower, "unique constraint") ||
		strings.Contains(errLower, "sqlstate 23505")
}

func parseDuplicateKeyError(err error) *AppError {
	errLower := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errLower, "idx_ratings_user_store") ||
		strings.Contains(errLower, "ratings.user_id") || strings.Contains(errLower, "ratings.store_id"):
		return &AppError{Kind: KindConflict, Code: RatingAlreadyExists, Message: "You have already rated this store", Err: err}
	case strings.Contains(errLower, "owner_id"):
		return &AppError{Kind: KindConflict, Code: StoreOwnerHasStore, Message: "This store owner already has a store", Err: err}
	case strings.Contains(errLower, "email"):
		return &AppError{Kind: KindConflict, Code: AuthEmailAlreadyExists, Message: "User with this email already exists", Err: err}
	default:
		return &AppError{Kind: KindConflict, Code: ResourceAlreadyExists, Message: "Resource already exists", Err: err}
	}
}

func defaultMessage(operation string) string {
	if operation == "" {
		return "Internal server error"
	}
	return "Failed to " + operation
}
