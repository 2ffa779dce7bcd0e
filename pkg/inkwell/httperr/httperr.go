// Package httperr maps the store and handler failure modes onto a fixed
// set of error kinds, each with its own HTTP status and a single JSON
// error shape. Handlers switch on kinds instead of inspecting driver
// error strings.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindValidation is a malformed or schema-violating request body.
	KindValidation Kind = iota
	// KindAuthMissing is an absent or non-Bearer Authorization header.
	KindAuthMissing
	// KindAuthInvalid is a token that fails verification, or bad
	// signin credentials.
	KindAuthInvalid
	// KindConflict is a unique-constraint violation (duplicate user,
	// like, or follow).
	KindConflict
	// KindNotFound is an operation targeting an absent row.
	KindNotFound
	// KindInternal is any other store or runtime failure.
	KindInternal
)

// Status returns the HTTP status for a kind. Validation failures keep the
// 411 the API has always answered with.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusLengthRequired
	case KindAuthMissing:
		return http.StatusUnauthorized
	case KindAuthInvalid:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a kind-carrying error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// FromDB translates a gorm error into a kinded Error. The conflict and
// not-found messages are supplied by the caller since they are
// entity-specific; anything unrecognized becomes internal.
func FromDB(err error, conflictMsg, notFoundMsg string) *Error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return New(KindConflict, conflictMsg)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return New(KindNotFound, notFoundMsg)
	default:
		return New(KindInternal, "An internal error occurred")
	}
}

// Abort writes the error response for e and stops the handler chain.
func Abort(c *gin.Context, e *Error) {
	c.AbortWithStatusJSON(e.Kind.Status(), gin.H{"error": e.Message})
}

// AbortKind writes an error response for an ad-hoc kind and message.
func AbortKind(c *gin.Context, kind Kind, message string) {
	Abort(c, New(kind, message))
}

// Validation writes the validation-failure response for a binding error.
func Validation(c *gin.Context, err error) {
	AbortKind(c, KindValidation, "Inputs not correct: "+err.Error())
}
