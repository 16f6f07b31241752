// Package codec centralizes the structured-text encoding of persisted
// configuration documents such as the store manifest.
//
// Codec selection is a compatibility boundary: every built-in codec emits
// plain JSON, so a manifest written by one is readable by the other.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Indenter is implemented by codecs that can produce human-diffable output.
type Indenter interface {
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MarshalPretty encodes v with two-space indentation and a trailing newline
// when the codec supports it, and compactly otherwise.
func MarshalPretty(c Codec, v any) ([]byte, error) {
	if c == nil {
		c = Default
	}
	var (
		b   []byte
		err error
	)
	if ind, ok := c.(Indenter); ok {
		b, err = ind.MarshalIndent(v, "", "  ")
	} else {
		b, err = c.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("codec %s marshal failed: %w", c.Name(), err)
	}
	return append(b, '\n'), nil
}
