package errors

// Error code constants
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // bad or missing field
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // malformed identifier

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // unknown resource or route
	ProductNotFound  = "PRODUCT_NOT_FOUND"  // unknown product id/slug

	// ==================== Auth (AUTH_) ====================
	AuthNotImplemented = "AUTH_NOT_IMPLEMENTED" // auth surface is stubbed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // storage failure
)
