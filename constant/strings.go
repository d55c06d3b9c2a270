package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain    = "domain"
	CtxGenerate  = "Generate"
	CtxValidate  = "ValidateRequest"
	CtxEnsureDir = "EnsureOutputDir"

	// Infrastructure context names
	CtxEncoder    = "encoder"
	CtxEncode     = "Encode"
	CtxRenderer   = "renderer"
	CtxRender     = "Render"
	CtxSave       = "SaveImage"
	CtxDB         = "db"
	CtxStore      = "Store"
	CtxFindRecent = "FindRecent"
	CtxClose      = "Close"
	CtxAPI        = "api"

	// General context names
	CtxRouter     = "Router"
	CtxMain       = "Main"
	CtxGenerateQR = "GenerateQR"
	CtxGetHistory = "GetHistory"
)

// Data field keys
const (
	// Service data fields
	DataService    = "service"
	DataInput      = "data"
	DataFilename   = "filename"
	DataOutputPath = "output_path"
	DataOutputDir  = "output_dir"
	DataVersion    = "version"
	DataLevel      = "error_correction"
	DataBoxSize    = "box_size"
	DataBorder     = "border"
	DataStyled     = "styled"
	DataDrawer     = "drawer_style"
	DataColorMask  = "color_mask"
	DataModules    = "modules"
	DataCacheHit   = "cache_hit"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"
	DataLimit        = "limit"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
)

// Error message constants
const (
	ErrEmptyData       = "input data cannot be empty"
	ErrDataTooLarge    = "data too large for QR code"
	ErrInvalidLevel    = "invalid error correction level"
	ErrInvalidVersion  = "version must be between 1 and 40"
	ErrInvalidDrawer   = "invalid drawer style"
	ErrInvalidMask     = "invalid color mask"
	ErrHistoryDisabled = "history store is not configured"
)

// Error codes
const (
	ErrCodeAPIBadRequest   = "API001"
	ErrCodeAPIServiceError = "API002"
	ErrCodeAppDBInit       = "APP001"
	ErrCodeAppServerStart  = "APP002"
	ErrCodeAppGenInit      = "APP003"
)

// Error types
const (
	ErrTypeAPI = "api"
	ErrTypeApp = "application"
)

// API routes
const (
	RouteGenerateQR  = "/qr"
	RouteHistory     = "/api/history"
	RouteHealthcheck = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Message constants for application
const (
	MsgApplicationStarting  = "Application starting"
	MsgGeneratorReady       = "QR generator initialized"
	MsgGenerationStarting   = "Starting QR code generation"
	MsgGenerationSucceeded  = "QR code generated"
	MsgGenerationFailed     = "QR code generation failed"
	MsgFailedToInitDB       = "Failed to initialize history database"
	MsgServerStarting       = "Server starting"
	MsgServerFailedToStart  = "Server failed to start"
	MsgServerShuttingDown   = "Server shutting down"
	MsgServerShutdownError  = "Error during server shutdown"
	MsgServerStopped        = "Server stopped"
	MsgRequestReceived      = "Request received"
	MsgRequestCompleted     = "Request completed"
	MsgSettingUpRoutes      = "Setting up API routes"
	MsgHealthcheckRequest   = "Handling healthcheck request"
	MsgHealthy              = "Healthy"
	MsgCancelledByUser      = "Operation cancelled by user"
	MsgCreatingOutputDir    = "Creating output directory"
	MsgOutputDirReady       = "Output directory validated"
	MsgHistoryStoreFailed   = "Failed to record generation history"
	MsgHandlingQRRequest    = "Handling QR generation request"
	MsgHandlingHistoryQuery = "Handling history query"
)

// Generation defaults (configuration surface consumed by the pipeline)
const (
	DefaultOutputDir       = "qr_codes"
	DefaultErrorCorrection = "L"
	DefaultBoxSize         = 10
	DefaultBorder          = 4
	DefaultDrawerStyle     = "rounded"
	DefaultColorMask       = "radial"
	DefaultForeground      = "black"
	DefaultBackground      = "white"
	DefaultExtension       = "png"
)

// Filename synthesis bounds
const (
	FilenamePrefix     = "qr_"
	FilenameMaxDataLen = 50
)

// Output directory probe file
const (
	ProbeFileName = ".permission_test"
)
