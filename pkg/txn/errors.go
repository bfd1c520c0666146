package txn

import "errors"

// Sentinel error kinds returned by Transactor operations. Callers compare
// against these with errors.Is; every operation wraps one of them with
// fmt.Errorf("...: %w", ...) to attach the offending entity or attribute.
var (
	// ErrUnknownEntity is returned when an operation names an entity id
	// that is not present in the snapshot being edited.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrUnknownAttribute is returned when Update names an attribute the
	// target entity does not carry.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrDuplicateEntity is returned by Add when the entity id is already
	// present.
	ErrDuplicateEntity = errors.New("duplicate entity")

	// ErrTypeMismatch is returned when a value supplied to Update does not
	// match the attribute's declared type.
	ErrTypeMismatch = errors.New("type mismatch")
)
