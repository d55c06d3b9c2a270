package constant

// Generator error codes
const (
	// Generator - Validation errors (0xx)
	ErrCodeEmptyData    = "GEN001"
	ErrCodeBadLevel     = "GEN002"
	ErrCodeBadVersion   = "GEN003"
	ErrCodeDataOverflow = "GEN004"
	ErrCodeBadDrawer    = "GEN005"
	ErrCodeBadColorMask = "GEN006"

	// Generator - Encoding/rendering errors (1xx)
	ErrCodeEncodeFailure = "GEN101"
	ErrCodeRenderFailure = "GEN102"

	// Generator - Filesystem errors (2xx)
	ErrCodeSaveFailure      = "GEN201"
	ErrCodePermissionDenied = "GEN202"
	ErrCodeOutputDirFailure = "GEN203"

	// Generator - History errors (3xx)
	ErrCodeHistoryStore = "GEN301"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Store operation errors (1xx)
	ErrCodeDBInsert = "DB101"

	// FindRecent operation errors (2xx)
	ErrCodeDBLookup     = "DB201"
	ErrCodeDBScanRows   = "DB202"
	ErrCodeDBRowIterate = "DB203"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeEncoding   = "encoding"
	ErrTypeRendering  = "rendering"
	ErrTypeFilesystem = "filesystem"
	ErrTypePermission = "permission"
	ErrTypeGeneration = "generation"
	ErrTypeHistory    = "history"

	// Infrastructure error types
	ErrTypeDB = "db"
)
