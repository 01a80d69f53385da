// Package codec selects the JSON encoder used for query reports.
//
// Reports are written with Default unless a codec is chosen by name, which
// the command line exposes as -codec.
package codec

import (
	"fmt"
	"sort"
)

// Codec turns report values into bytes and back. Safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

var builtin = map[string]Codec{
	NameJSON:   JSON{},
	NameGoJSON: GoJSON{},
}

// ByName looks up a built-in codec, as accepted by -codec.
func ByName(name string) (Codec, bool) {
	c, ok := builtin[name]
	return c, ok
}

// Names returns the names of the built-in codecs, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Marshal encodes v with c, falling back to Default when c is nil.
func Marshal(c Codec, v any) ([]byte, error) {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return b, nil
}

// MustMarshal is Marshal for tests and benchmarks; it panics on error.
func MustMarshal(c Codec, v any) []byte {
	b, err := Marshal(c, v)
	if err != nil {
		panic(err)
	}
	return b
}
