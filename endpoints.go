package client

const (
	// DefaultAPIURL is the server API endpoint of a local development server.
	DefaultAPIURL = "http://localhost:8000/api/"

	// DefaultHashAlgorithm is the HMAC digest used for API signs and tokens.
	DefaultHashAlgorithm = "sha256"
)

// API command methods.
const (
	MethodPublish     = "publish"
	MethodUnsubscribe = "unsubscribe"
	MethodDisconnect  = "disconnect"
	MethodPresence    = "presence"
	MethodHistory     = "history"
	MethodChannels    = "channels"
	MethodStats       = "stats"
)

// Form fields of a signed API request.
const (
	FieldSign = "sign"
	FieldData = "data"
)
