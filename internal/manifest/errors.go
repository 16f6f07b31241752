package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrMissing is returned when the manifest file does not exist.
	ErrMissing = errors.New("manifest not found")

	// ErrUnreadable is returned when the manifest exists but cannot be read.
	ErrUnreadable = errors.New("manifest unreadable")

	// ErrCorrupt is returned when the manifest does not parse or describes
	// an invalid store.
	ErrCorrupt = errors.New("manifest corrupt")

	// ErrWriteFailed is returned when the manifest cannot be persisted.
	ErrWriteFailed = errors.New("manifest write failed")

	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("invalid manifest")

	// ErrIncompatibleVersion matches both major-version mismatches.
	ErrIncompatibleVersion = errors.New("incompatible store version")

	// ErrStoreTooOld means the store must be upgraded before use.
	ErrStoreTooOld = fmt.Errorf("%w: store is too old and must be upgraded", ErrIncompatibleVersion)

	// ErrEngineTooOld means the engine must be updated to open the store.
	ErrEngineTooOld = fmt.Errorf("%w: engine is too old and must be updated", ErrIncompatibleVersion)

	// ErrNotServable is returned for store kinds that are never served.
	ErrNotServable = errors.New("store type cannot be served")
)

// Error records a failed manifest operation and the file it concerned.
type Error struct {
	Op   string // "load" or "save"
	Path string
	Kind error // one of the sentinels above
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("manifest %s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("manifest %s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// VersionError reports a fatal major-version mismatch.
type VersionError struct {
	Store  Version
	Engine Version
	Kind   error // ErrStoreTooOld or ErrEngineTooOld
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("store version %s, engine version %s: %v", e.Store, e.Engine, e.Kind)
}

func (e *VersionError) Unwrap() error { return e.Kind }
