package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Upsert write path ─────────────────────────────────────────────
	ErrRateLimitExceeded        ErrCode = "RATE_LIMIT_EXCEEDED"
	ErrSessionSecurityViolation ErrCode = "SESSION_SECURITY_VIOLATION"
	ErrOwnershipViolation       ErrCode = "OWNERSHIP_VIOLATION"
	ErrInvalidTaxonomyReference ErrCode = "INVALID_TAXONOMY_REFERENCE"
	ErrInvalidCategoryHierarchy ErrCode = "INVALID_CATEGORY_HIERARCHY"
	ErrDataIntegrityViolation   ErrCode = "DATA_INTEGRITY_VIOLATION"
	ErrUnsupportedQuestionType  ErrCode = "UNSUPPORTED_QUESTION_TYPE"
	ErrPersistenceFailure       ErrCode = "PERSISTENCE_FAILURE"
	ErrUpsert                   ErrCode = "UPSERT_ERROR"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."

	// ─── Upsert write path ─────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrSessionSecurityViolation:
		return "Request origin does not match the active session."
	case ErrOwnershipViolation:
		return "You do not own the target question bank."
	case ErrInvalidTaxonomyReference:
		return "One or more taxonomy references do not exist in this bank."
	case ErrInvalidCategoryHierarchy:
		return "Category levels must form a contiguous chain starting at level 1."
	case ErrDataIntegrityViolation:
		return "The question payload violates a structural rule for its type."
	case ErrUnsupportedQuestionType:
		return "The question type is not supported."
	case ErrPersistenceFailure:
		return "The question could not be stored. No changes were applied."
	case ErrUpsert:
		return "An unexpected error occurred while processing the question."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
