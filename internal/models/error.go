package models

import "errors"

// Sentinel errors for the failure taxonomy. Each is terminal: raised at the
// point of detection and propagated unchanged to the boundary layer, which
// owns the mapping to transport status codes.
var (
	// ErrAccessDenied covers bad credentials and violated authorization
	// rules alike; the two causes are deliberately indistinguishable.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound means a referenced account does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists means an edit's new email collides with a different
	// existing account.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrDataValidation means an outward record failed its required-field
	// checks. This signals a data-integrity problem, not a caller error.
	ErrDataValidation = errors.New("data validation failed")

	// ErrMissingParameter means an unrecognized search-field selector or an
	// unroutable action was supplied.
	ErrMissingParameter = errors.New("missing parameter")

	// ErrInternalServer is the generic failure for repository or hasher
	// errors, kept distinct from the five typed errors above.
	ErrInternalServer = errors.New("internal server error")
)
