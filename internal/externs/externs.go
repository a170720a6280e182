// Package externs loads the externs-to-TypeScript-typing map: a JSON
// object whose keys are extern type names as they appear in JavaScript
// and whose values are the TypeScript type names to substitute. The
// format is small and internal enough that encoding/json needs no
// third-party replacement.
package externs

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Map is the externs map: extern type name -> TypeScript type name.
type Map map[string]string

// Load parses the externs map file contents. An empty or absent file
// (represented here by empty text) yields an empty map — a missing
// externs mapping is not an error.
func Load(text string) (Map, error) {
	if len(text) == 0 {
		return Map{}, nil
	}
	var m Map
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, errors.Wrap(err, "parsing externs map")
	}
	if m == nil {
		m = Map{}
	}
	return m, nil
}

// Resolve substitutes externTypeName for its TypeScript equivalent if the
// map has one, otherwise returns the name unchanged.
func (m Map) Resolve(externTypeName string) string {
	if typingName, ok := m[externTypeName]; ok {
		return typingName
	}
	return externTypeName
}
