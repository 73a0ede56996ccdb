package constant

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeySessionID contextKey = "session_id"
	ContextKeyUnlocked  contextKey = "unlocked"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID       = "id"
	RequestParamYear     = "year"
	RequestParamMonth    = "month"
	RequestParamCheckIn  = "check_in"
	RequestParamCheckOut = "check_out"
	RequestParamGuest    = "guest"
	RequestParamAgent    = "agent"
	RequestParamCompany  = "company"
	RequestParamStatus   = "status"
	RequestParamFrom     = "from"
	RequestParamTo       = "to"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 20
)

const (
	// DateFormat is the wire format for stay dates, day-month-year
	// abbreviated per the booking sheets.
	DateFormat = "02-Jan-2006"

	// DateFormatStorage is the column format inside the CSV tables.
	DateFormatStorage = "2006-01-02"

	// StampFormat is the entry-time column format.
	StampFormat = "2006-01-02 15:04:05"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)

const (
	// CacheKeyRevokedSession prefixes the denylist entries for edit-session
	// tokens relocked before their expiry.
	CacheKeyRevokedSession = "gate:revoked"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelStorageScopeName    = "storage"

	OtelS3ScopeName = "s3"
)
