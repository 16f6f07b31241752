package manifest

import (
	"cmp"
	"fmt"
	"log/slog"
	"strings"
)

// Version is a major.minor.patch triple.
type Version struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
	Patch uint16 `json:"patch"`
}

// EngineVersion is the version of the running engine; new stores record it.
var EngineVersion = Version{Major: 0, Minor: 1, Patch: 0}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders versions by major, then minor, then patch.
func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, o.Patch)
}

// StoreType is the kind of a store.
type StoreType uint8

const (
	Live StoreType = iota
	Lite
	Backup
	Archive
)

var storeTypeNames = [...]string{"live", "lite", "backup", "archive"}

// StoreTypeNames lists the accepted tokens in declaration order.
func StoreTypeNames() []string { return append([]string(nil), storeTypeNames[:]...) }

func (t StoreType) String() string {
	if t.Valid() {
		return storeTypeNames[t]
	}
	return fmt.Sprintf("StoreType(%d)", uint8(t))
}

// Valid reports whether t is one of the declared store types.
func (t StoreType) Valid() bool { return int(t) < len(storeTypeNames) }

// Servable reports whether stores of this type may be opened for serving.
func (t StoreType) Servable() bool { return t == Live || t == Lite }

// ParseStoreType parses a store type token ("live", "lite", "backup", "archive").
func ParseStoreType(s string) (StoreType, error) {
	for i, name := range storeTypeNames {
		if s == name {
			return StoreType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown store type %q (allowed: %s)", ErrInvalid, s, strings.Join(storeTypeNames[:], ", "))
}

func (t StoreType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown store type %d", ErrInvalid, uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *StoreType) UnmarshalText(b []byte) error {
	v, err := ParseStoreType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// LogLevel is the store's logging mode.
type LogLevel uint8

const (
	LogOff LogLevel = iota
	LogMinimal
	LogNormal
	LogDetailed
)

var logLevelNames = [...]string{"off", "minimal", "normal", "detailed"}

// LogLevelNames lists the accepted tokens in declaration order.
func LogLevelNames() []string { return append([]string(nil), logLevelNames[:]...) }

func (l LogLevel) String() string {
	if l.Valid() {
		return logLevelNames[l]
	}
	return fmt.Sprintf("LogLevel(%d)", uint8(l))
}

// Valid reports whether l is one of the declared levels.
func (l LogLevel) Valid() bool { return int(l) < len(logLevelNames) }

// SlogLevel maps the store logging mode onto a slog level. enabled is false
// for LogOff.
func (l LogLevel) SlogLevel() (level slog.Level, enabled bool) {
	switch l {
	case LogOff:
		return 0, false
	case LogMinimal:
		return slog.LevelWarn, true
	case LogDetailed:
		return slog.LevelDebug, true
	default:
		return slog.LevelInfo, true
	}
}

// ParseLogLevel parses a logging token ("off", "minimal", "normal", "detailed").
func ParseLogLevel(s string) (LogLevel, error) {
	for i, name := range logLevelNames {
		if s == name {
			return LogLevel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown logging mode %q (allowed: %s)", ErrInvalid, s, strings.Join(logLevelNames[:], ", "))
}

func (l LogLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: unknown logging mode %d", ErrInvalid, uint8(l))
	}
	return []byte(l.String()), nil
}

func (l *LogLevel) UnmarshalText(b []byte) error {
	v, err := ParseLogLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
