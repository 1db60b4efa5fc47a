package shared

// DomainError represents a domain-level error with a stable code for
// operator-facing reporting.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Structural errors are fatal for the run; a fatal
// error must leave no partial outputs behind.
var (
	ErrNotFound       = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput   = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState   = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrEmptySource    = NewDomainError("EMPTY_SOURCE", "Source contains no records but data was expected")
	ErrInvalidWindow  = NewDomainError("INVALID_WINDOW", "Run window start is after end")
	ErrPublishAborted = NewDomainError("PUBLISH_ABORTED", "Run cancelled before outputs were published")
)
