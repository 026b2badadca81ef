package espn

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a class of failure in the error taxonomy.
type Kind int

const (
	// KindService is the root of the taxonomy
	KindService Kind = iota
	// KindClient covers failures talking to the remote API
	KindClient
	// KindNotFound is a 404 response
	KindNotFound
	// KindRateLimited is a 429 response
	KindRateLimited
	// KindIngestion is a payload that cannot be mapped into entities
	KindIngestion
	// KindValidation is an invalid configuration value
	KindValidation
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindService:
		return "service error"
	case KindClient:
		return "client error"
	case KindNotFound:
		return "not found"
	case KindRateLimited:
		return "rate limited"
	case KindIngestion:
		return "ingestion error"
	case KindValidation:
		return "validation error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// parent returns the kind one level up the hierarchy. KindService is its own parent.
func (k Kind) parent() Kind {
	switch k {
	case KindNotFound, KindRateLimited:
		return KindClient
	default:
		return KindService
	}
}

// Sentinels for matching with errors.Is. A not-found error matches
// ErrNotFound, ErrClient and ErrService.
var (
	ErrService     = errors.New("espn service error")
	ErrClient      = errors.New("espn client error")
	ErrNotFound    = errors.New("espn resource not found")
	ErrRateLimited = errors.New("espn rate limit exceeded")
	ErrIngestion   = errors.New("espn ingestion error")
	ErrValidation  = errors.New("espn validation error")

	// ErrUsage reports a client used through the wrong lifecycle API or
	// before it was initialised. It is not part of the service hierarchy.
	ErrUsage = errors.New("espn usage error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindClient:
		return ErrClient
	case KindNotFound:
		return ErrNotFound
	case KindRateLimited:
		return ErrRateLimited
	case KindIngestion:
		return ErrIngestion
	case KindValidation:
		return ErrValidation
	default:
		return ErrService
	}
}

// Reason tags a client error with what went wrong.
type Reason string

const (
	ReasonServer    Reason = "server error"
	ReasonAPI       Reason = "API error"
	ReasonParse     Reason = "parse error"
	ReasonTransport Reason = "transport error"
)

// Error is the only error type returned across the package boundary.
type Error struct {
	Kind       Kind
	Reason     Reason
	StatusCode int
	URL        string
	Message    string
	Fields     []string // offending fields for KindValidation
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Message == "" {
		sb.WriteString(e.Kind.String())
	}
	if e.URL != "" {
		fmt.Fprintf(&sb, " (%s)", e.URL)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e's kind or of any ancestor kind.
func (e *Error) Is(target error) bool {
	k := e.Kind
	for {
		if k.sentinel() == target {
			return true
		}
		if k == KindService {
			return false
		}
		k = k.parent()
	}
}

// IsNotFound reports whether the error is a 404 classification
func (e *Error) IsNotFound() bool {
	return e.Kind == KindNotFound
}

// IsRateLimited reports whether the error is a 429 classification
func (e *Error) IsRateLimited() bool {
	return e.Kind == KindRateLimited
}

// IsRetryable reports whether the retry policy may try the request again.
// Not-found is a client error but is never retried.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindClient || e.Kind == KindRateLimited
}

func newNotFound(url string) *Error {
	return &Error{Kind: KindNotFound, StatusCode: 404, URL: url, Message: "Resource not found"}
}

func newRateLimited(url string) *Error {
	return &Error{Kind: KindRateLimited, StatusCode: 429, URL: url, Message: "Rate limit exceeded"}
}

func newClientError(reason Reason, status int, url, msg string, cause error) *Error {
	return &Error{Kind: KindClient, Reason: reason, StatusCode: status, URL: url, Message: msg, Err: cause}
}

// NewIngestionError reports a payload whose structure cannot be mapped.
func NewIngestionError(msg string, cause error) *Error {
	return &Error{Kind: KindIngestion, Message: msg, Err: cause}
}

func newValidationError(msg string, fields []string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields, Err: cause}
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
