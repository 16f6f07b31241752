package orixdb

import (
	"errors"
	"fmt"

	"github.com/orixdb/orixdb/internal/fs"
	"github.com/orixdb/orixdb/internal/index"
	"github.com/orixdb/orixdb/internal/layout"
	"github.com/orixdb/orixdb/internal/manifest"
	"github.com/orixdb/orixdb/internal/port"
	"github.com/orixdb/orixdb/internal/resource"
)

var (
	// ErrDirectoryNotFound is returned when the store directory does not
	// exist or is not a directory.
	ErrDirectoryNotFound = errors.New("store directory not found")

	// ErrIndexCorrupt is returned when an index file is malformed or its
	// entries do not fit the file table.
	ErrIndexCorrupt = errors.New("index corrupt")

	// ErrDeclined is returned when the operator declines to open a store
	// written by a newer engine. It is not a failure.
	ErrDeclined = errors.New("opening declined by operator")

	// ErrStoreLocked is returned when another process holds the store.
	ErrStoreLocked = errors.New("store is locked by another process")

	// ErrInvalidRange is returned for byte ranges outside a data file.
	ErrInvalidRange = errors.New("invalid byte range")
)

// Errors shared with the internal packages.
var (
	ErrManifestMissing     = manifest.ErrMissing
	ErrManifestUnreadable  = manifest.ErrUnreadable
	ErrManifestCorrupt     = manifest.ErrCorrupt
	ErrManifestWriteFailed = manifest.ErrWriteFailed
	ErrInvalidManifest     = manifest.ErrInvalid
	ErrIncompatibleVersion = manifest.ErrIncompatibleVersion
	ErrStoreTooOld         = manifest.ErrStoreTooOld
	ErrEngineTooOld        = manifest.ErrEngineTooOld
	ErrStoreNotServable    = manifest.ErrNotServable
	ErrInvalidPort         = port.ErrInvalidPort
	ErrIndexUnreadable     = index.ErrUnreadable
	ErrDirectoryNotEmpty   = layout.ErrDirectoryNotEmpty
	ErrNotADirectory       = layout.ErrNotADirectory
	ErrParentMissing       = layout.ErrParentMissing
	ErrLayoutIncomplete    = layout.ErrLayoutIncomplete
	ErrFileBusy            = resource.ErrBusy
)

// translateError maps internal errors onto the public taxonomy. The original
// error stays reachable through errors.Is and errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, index.ErrCorrupt), errors.Is(err, index.ErrInconsistent):
		if errors.Is(err, ErrIndexCorrupt) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrIndexCorrupt, err)
	case errors.Is(err, fs.ErrLocked):
		if errors.Is(err, ErrStoreLocked) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrStoreLocked, err)
	}
	return err
}
