// Package config loads the optional .gents.toml defaults file. Command
// line flags always override whatever this file sets — see cmd/gents.
package config

import (
	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// File is the shape of .gents.toml. Every field is optional; a field left
// unset in the file leaves the CLI's own flag default in place.
type File struct {
	Root            string   `toml:"root"`
	OutputDir       string   `toml:"outputDir"`
	ExternsMapPath  string   `toml:"externsMap"`
	RewriteVarToLet *bool    `toml:"rewriteVarToLet"`
	Debug           bool     `toml:"debug"`
	Externs         []string `toml:"externs"`
}

// Load parses a .gents.toml file's contents. Absent text (the caller
// found no file) yields a zero-value File, matching the externs map's
// "absent file means empty" convention elsewhere in this module.
func Load(text string) (File, error) {
	if len(text) == 0 {
		return File{}, nil
	}
	var f File
	if err := toml.Unmarshal([]byte(text), &f); err != nil {
		return File{}, errors.Wrap(err, "parsing .gents.toml")
	}
	return f, nil
}
