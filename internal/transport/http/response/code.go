package response

// Business codes follow HTTP semantics; the transport status is always 200.
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeLocked          = 423
	CodeTooManyRequests = 429
	CodeServerError     = 500
	CodeServerBusy      = 503
	CodeTimeout         = 504
)

var messages = map[int]string{
	CodeOK:              "OK",
	CodeBadRequest:      "Bad Request",
	CodeUnauthorized:    "Unauthorized",
	CodeForbidden:       "Forbidden",
	CodeNotFound:        "Not Found",
	CodeConflict:        "Conflict",
	CodeLocked:          "Locked",
	CodeTooManyRequests: "Too Many Requests",
	CodeServerError:     "Internal Server Error",
	CodeServerBusy:      "Service Unavailable",
	CodeTimeout:         "Gateway Timeout",
}

// Message is the default text of code; unknown codes read as "Error".
func Message(code int) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Error"
}
