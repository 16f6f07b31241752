package orixdb

import (
	"github.com/orixdb/orixdb/internal/hole"
	"github.com/orixdb/orixdb/internal/index"
	"github.com/orixdb/orixdb/internal/manifest"
	"github.com/orixdb/orixdb/internal/port"
)

type (
	Manifest         = manifest.Manifest
	InstanceDefaults = manifest.InstanceDefaults
	Version          = manifest.Version
	StoreType        = manifest.StoreType
	LogLevel         = manifest.LogLevel
	Decision         = manifest.Decision

	ID    = index.ID
	Entry = index.Entry

	PortSpec = port.Spec
	Hole     = hole.Hole

	// CorruptError names the index file and byte offset of a malformed record.
	CorruptError = index.CorruptError
	// InconsistencyError names an entry that does not fit its data file.
	InconsistencyError = index.InconsistencyError
	// InvalidPortError names the rejected port spec.
	InvalidPortError = port.InvalidPortError
	// ManifestError names the manifest file of a failed load or save.
	ManifestError = manifest.Error
	// VersionError carries both versions of a major-version mismatch.
	VersionError = manifest.VersionError
)

const (
	Live    = manifest.Live
	Lite    = manifest.Lite
	Backup  = manifest.Backup
	Archive = manifest.Archive

	DecisionProceed = manifest.DecisionProceed
	DecisionWarn    = manifest.DecisionWarn
	DecisionConfirm = manifest.DecisionConfirm
)

// EngineVersion is the version of this engine.
var EngineVersion = manifest.EngineVersion

// ParseID converts a 12-byte string to an ID.
func ParseID(s string) (ID, error) { return index.ParseID(s) }

// NewID returns a random lowercase alphanumeric ID.
func NewID() ID { return index.NewID() }

// ParsePort parses a port spec such as "7900" or "7900...". label names the
// setting in errors.
func ParsePort(token, label string) (PortSpec, error) { return port.Parse(token, label) }
