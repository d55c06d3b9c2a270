package generator

import (
	"errors"

	"github.com/prasetyowira/qrgen/constant"
)

// Kind discriminates the closed set of generation failure classes.
type Kind int

const (
	// KindGeneration is the catch-all for unclassified failures during
	// encoding, rendering or saving.
	KindGeneration Kind = iota
	// KindInputValidation covers caller-supplied configuration problems:
	// empty data, bad error correction level, bad style names, data that
	// exceeds the maximum QR capacity.
	KindInputValidation
	// KindFilesystem covers directory creation and image save failures
	// other than permissions.
	KindFilesystem
	// KindPermissionDenied is a specialization of KindFilesystem for
	// writes rejected due to insufficient permissions.
	KindPermissionDenied
)

func (k Kind) String() string {
	switch k {
	case KindInputValidation:
		return constant.ErrTypeValidation
	case KindFilesystem:
		return constant.ErrTypeFilesystem
	case KindPermissionDenied:
		return constant.ErrTypePermission
	default:
		return constant.ErrTypeGeneration
	}
}

// Error is the single error type raised by the generation pipeline. The
// Kind discriminant replaces an exception hierarchy: matching on the base
// class becomes IsGenerationError, matching on a specialization becomes
// the corresponding predicate.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrDataOverflow is the sentinel reported by the symbol encoder when data
// does not fit even at the largest version.
var ErrDataOverflow = errors.New("data exceeds maximum QR capacity")

// NewInputError builds an input-validation failure. Collaborators use it
// for the one legitimate runtime validation point: looking up an
// externally supplied name in a closed capability set.
func NewInputError(code, message string) *Error {
	return &Error{Kind: KindInputValidation, Code: code, Message: message}
}

func newInputError(code, message string) *Error {
	return NewInputError(code, message)
}

func wrapError(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: cause}
}

// IsGenerationError reports whether err belongs to the generation error
// taxonomy at all (the base-class match).
func IsGenerationError(err error) bool {
	var genErr *Error
	return errors.As(err, &genErr)
}

// IsInputValidation reports whether err is a caller-input failure.
func IsInputValidation(err error) bool {
	var genErr *Error
	return errors.As(err, &genErr) && genErr.Kind == KindInputValidation
}

// IsFilesystem reports whether err is a filesystem failure. Permission
// failures are a specialization of filesystem failures and match too.
func IsFilesystem(err error) bool {
	var genErr *Error
	if !errors.As(err, &genErr) {
		return false
	}
	return genErr.Kind == KindFilesystem || genErr.Kind == KindPermissionDenied
}

// IsPermissionDenied reports whether err is a permission failure.
func IsPermissionDenied(err error) bool {
	var genErr *Error
	return errors.As(err, &genErr) && genErr.Kind == KindPermissionDenied
}
