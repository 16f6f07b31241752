package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/orixdb/orixdb/codec"
	"github.com/orixdb/orixdb/internal/fs"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// FileName is the manifest's name relative to the store root.
	FileName = "manifest.json"
	// CurrentSchema is the manifest layout written by this engine.
	CurrentSchema = 1

	DefaultAPIPort     = 7900
	DefaultClusterPort = 7979
)

// Manifest describes a store: its identity, version, type and the defaults
// used when the store is served without overrides.
type Manifest struct {
	Schema       int              `json:"schema"`
	Name         string           `json:"name"`
	ID           string           `json:"id" validate:"required,max=255,storeid"`
	Version      Version          `json:"version"`
	Kind         StoreType        `json:"kind" validate:"enum"`
	Ordering     bool             `json:"ordering"`
	Checksumming bool             `json:"checksumming"`
	Logging      LogLevel         `json:"logging" validate:"enum"`
	Defaults     InstanceDefaults `json:"defaults"`
}

// InstanceDefaults are the serve-time settings used when the caller does not
// override them.
type InstanceDefaults struct {
	Verbosity   bool   `json:"verbosity"`
	APIPort     uint16 `json:"api_port" validate:"required"`
	APIScan     bool   `json:"api_scan"`
	ClusterPort uint16 `json:"cluster_port" validate:"required"`
	ClusterScan bool   `json:"cluster_scan"`
}

// New returns a live store manifest with the default settings.
func New(name, id string) *Manifest {
	return &Manifest{
		Schema:       CurrentSchema,
		Name:         name,
		ID:           id,
		Version:      EngineVersion,
		Kind:         Live,
		Checksumming: true,
		Logging:      LogNormal,
		Defaults: InstanceDefaults{
			APIPort:     DefaultAPIPort,
			ClusterPort: DefaultClusterPort,
		},
	}
}

// Load reads and validates the manifest at path.
func Load(fsys fs.FileSystem, path string) (*Manifest, error) {
	if fsys == nil {
		fsys = fs.Default
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Op: "load", Path: path, Kind: ErrMissing, Err: err}
		}
		return nil, &Error{Op: "load", Path: path, Kind: ErrUnreadable, Err: err}
	}

	m, err := Decode(data)
	if err != nil {
		return nil, &Error{Op: "load", Path: path, Kind: ErrCorrupt, Err: err}
	}
	return m, nil
}

// Decode parses and validates manifest bytes.
func Decode(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := codec.Default.Unmarshal(data, m); err != nil {
		return nil, err
	}
	if m.Schema == 0 {
		m.Schema = 1
	}
	if m.Schema > CurrentSchema {
		return nil, fmt.Errorf("unsupported manifest schema %d (newest known: %d)", m.Schema, CurrentSchema)
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Encode validates m and renders it as indented JSON.
func Encode(m *Manifest) ([]byte, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}
	out := *m
	if out.Schema == 0 {
		out.Schema = CurrentSchema
	}
	return codec.MarshalPretty(codec.Default, &out)
}

// Save validates m and atomically writes it to path.
func Save(fsys fs.FileSystem, path string, m *Manifest) error {
	if fsys == nil {
		fsys = fs.Default
	}
	data, err := Encode(m)
	if err != nil {
		return &Error{Op: "save", Path: path, Kind: ErrInvalid, Err: err}
	}
	if err := fs.WriteFile(fsys, path, data, 0o644); err != nil {
		return &Error{Op: "save", Path: path, Kind: ErrWriteFailed, Err: err}
	}
	return nil
}

// Slugify derives a store id from a display name. Accents are stripped,
// ASCII letters and digits are lowercased and kept, and every other run of
// characters, '-' and '_' included, becomes a single '-'.
func Slugify(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}
