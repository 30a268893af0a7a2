package paper

import "errors"

// Classified failure kinds. Every core operation returns a success value
// or an error wrapping one of these; the dispatcher is the only place
// that renders them into user-facing text.
var (
	// ErrNotFound indicates an unknown paper, note, or reading-list
	// index or name.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates empty text, a non-positive index, or
	// an otherwise malformed argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedStyle indicates an unrecognized citation style.
	ErrUnsupportedStyle = errors.New("unsupported citation style")

	// ErrDuplicateName indicates a reading-list name collision.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrProviderUnavailable indicates an external search or
	// language-model failure.
	ErrProviderUnavailable = errors.New("provider unavailable")
)
