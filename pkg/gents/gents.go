// Package gents is the programmatic entry point. Everything else in this
// module is an implementation detail reachable only through Transpile.
package gents

import (
	"github.com/gentsgo/gents/internal/externs"
	"github.com/gentsgo/gents/internal/logger"
	"github.com/gentsgo/gents/internal/stylefix"
	"github.com/gentsgo/gents/internal/transpile"
)

// Source is a (name, text) pair, ordered within a call the same way the
// caller ordered its source list — ordering matters because the first
// reference to a given (file, namespace) pair determines the import and
// local symbol chosen for that file.
type Source = transpile.Source

// Diagnostic is one reported problem, in the ordering logger.Log.Done()
// produces (file, then line, then kind, then text).
type Diagnostic = logger.Msg

// Config carries the handful of configurable policy knobs ("var->let
// policy... default on") plus the externs map, the parsed form of a
// caller-supplied JSON file.
type Config struct {
	ExternsMap      externs.Map
	RewriteVarToLet bool
	// Debug raises the diagnostic level to include info-level messages;
	// the CLI's --debug flag maps directly onto this.
	Debug bool
}

// DefaultConfig returns the zero-configuration defaults: var->let
// enabled, no externs substitutions, warning-level diagnostics.
func DefaultConfig() Config {
	return Config{ExternsMap: externs.Map{}, RewriteVarToLet: true}
}

// Transpile is the module's one operation: given the set of source names
// (exactly as they appear in sources) the caller wants emitted, the ordered sources, and the
// ordered externs files, it returns every emitted file's TypeScript text
// keyed by basename-without-extension, plus every diagnostic collected
// along the way.
func Transpile(filesToEmit map[string]bool, sources []Source, externSources []Source, cfg Config) (map[string]string, []Diagnostic) {
	level := logger.LevelWarning
	if cfg.Debug {
		level = logger.LevelInfo
	}
	result := transpile.Run(transpile.Options{
		FilesToEmit: filesToEmit,
		Sources:     sources,
		Externs:     externSources,
		ExternsMap:  cfg.ExternsMap,
		Style:       stylefix.Options{RewriteVarToLet: cfg.RewriteVarToLet},
	}, level)

	return result.Emitted, result.Log.Done()
}
