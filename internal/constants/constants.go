package constants

const (
	// ContextKeyRequestID is the gin context key holding the request id.
	ContextKeyRequestID = "request_id"

	// HeaderRequestID carries the request id in and out of the service.
	HeaderRequestID = "X-Request-ID"

	// MaxRequestIDLength caps a client supplied request id before it is echoed back.
	MaxRequestIDLength = 128
)
