package errors

// Error codes returned in the envelope "code" field.
// Format: CATEGORY_SPECIFIC_DETAIL

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized        = "AUTH_UNAUTHORIZED"         // missing or malformed bearer header
	AuthInvalidCredentials  = "AUTH_INVALID_CREDENTIALS"  // wrong email/password
	AuthTokenExpired        = "AUTH_TOKEN_EXPIRED"        // token past expiry
	AuthTokenInvalid        = "AUTH_TOKEN_INVALID"        // bad signature or format
	AuthTokenRevoked        = "AUTH_TOKEN_REVOKED"        // logged out
	AuthEmailAlreadyExists  = "AUTH_EMAIL_EXISTS"         // duplicate email
	AuthPasswordIncorrect   = "AUTH_PASSWORD_INCORRECT"   // current password mismatch
	AuthPasswordUnchanged   = "AUTH_PASSWORD_UNCHANGED"   // new password equals current

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // role not allowed
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // no identity in context
	AuthzWrongPortal  = "AUTHZ_WRONG_PORTAL"   // role-scoped login with another role

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"
	UserNotFound          = "USER_NOT_FOUND"

	// ==================== Stores (STORE_) ====================
	StoreNotFound        = "STORE_NOT_FOUND"
	StoreOwnerHasStore   = "STORE_OWNER_HAS_STORE"   // owner already has a store
	StoreOwnerNotFound   = "STORE_OWNER_NOT_FOUND"
	StoreOwnerRoleNeeded = "STORE_OWNER_ROLE_NEEDED" // linked account is not a store owner

	// ==================== Ratings (RATING_) ====================
	RatingAlreadyExists = "RATING_ALREADY_EXISTS"
	RatingNotFound      = "RATING_NOT_FOUND"
	RatingInvalidValue  = "RATING_INVALID_VALUE"

	// ==================== Reports (REPORT_) ====================
	ReportStorageDisabled = "REPORT_STORAGE_DISABLED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalDatabase    = "INTERNAL_DATABASE_ERROR"
	InternalUnavailable = "INTERNAL_SERVICE_UNAVAILABLE"
)
