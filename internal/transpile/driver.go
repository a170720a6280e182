// Package transpile implements the Driver. It owns the side tables
// (comment registry, Type Rewrite Table, Pending Imports) for one
// compilation and runs every script through the fixed pass order:
// type-annotation, style-fix, typed code generation.
package transpile

import (
	"fmt"

	"github.com/gentsgo/gents/internal/ast"
	"github.com/gentsgo/gents/internal/externs"
	"github.com/gentsgo/gents/internal/logger"
	"github.com/gentsgo/gents/internal/miniparse"
	"github.com/gentsgo/gents/internal/modulemeta"
	"github.com/gentsgo/gents/internal/stylefix"
	"github.com/gentsgo/gents/internal/tsprinter"
	"github.com/gentsgo/gents/internal/typeannotate"
)

// Source is a (name, text) pair — the same shape modulemeta.Source uses,
// re-declared here so callers of this package don't need to import
// internal/modulemeta just to build a Run input.
type Source = modulemeta.Source

// Options configures one compilation run.
type Options struct {
	FilesToEmit map[string]bool
	Sources     []Source
	Externs     []Source // ambient-declaration files: parsed for symbols, never emitted
	ExternsMap  externs.Map
	Style       stylefix.Options
}

// Result is the outcome of one compilation.
type Result struct {
	Emitted map[string]string // basename-without-extension -> TypeScript source
	Log     *logger.Log
}

// Run parses every input, builds the Symbol Index from the whole
// compilation's sources (including externs files, which can declare
// namespaces other files import from), then runs the three passes over
// every emittable script and prints it.
func Run(opts Options, level logger.LogLevel) *Result {
	log := logger.NewLog(level)
	comments := ast.NewComments()

	allForIndex := make([]modulemeta.Source, 0, len(opts.Sources)+len(opts.Externs))
	allForIndex = append(allForIndex, opts.Sources...)
	allForIndex = append(allForIndex, opts.Externs...)
	index := modulemeta.Collect(allForIndex)

	scripts := make([]*ast.Node, 0, len(opts.Sources))
	externsFileFlag := map[string]bool{}
	for _, src := range opts.Sources {
		script, isExterns, err := parseOneFile(src, comments, log)
		if err != nil {
			continue
		}
		scripts = append(scripts, script)
		externsFileFlag[src.Name] = isExterns
	}

	pass := typeannotate.NewPass(index, opts.ExternsMap, comments)
	failed := pass.Run(scripts)
	for file, err := range failed {
		log.AddError(&logger.Location{File: file}, err.Error())
	}

	stylefix.Run(scripts, opts.Style)

	generator := tsprinter.New(comments)
	emitted := map[string]string{}
	for _, script := range scripts {
		file := script.SourceFile
		if _, errored := failed[file]; errored {
			continue
		}
		if externsFileFlag[file] {
			continue
		}
		if opts.FilesToEmit != nil && !opts.FilesToEmit[file] {
			continue
		}
		text, ok := printOneFile(generator, script, log)
		if !ok {
			continue
		}
		emitted[basename(file)] = text
	}

	return &Result{Emitted: emitted, Log: log}
}

// parseOneFile isolates a single file's parse failure from the rest of
// the batch: malformed input aborts that file only, recovering a panic
// from miniparse the same way a real JS toolchain's parser failure would
// surface as a per-file error rather
// than crashing the whole driver.
func parseOneFile(src modulemeta.Source, comments *ast.Comments, log *logger.Log) (script *ast.Node, isExterns bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.AddError(&logger.Location{File: src.Name}, fmt.Sprintf("%v", r))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	script, isExterns, err = miniparse.Parse(src.Name, src.Text, comments)
	if err != nil {
		log.AddError(&logger.Location{File: src.Name}, err.Error())
	}
	return script, isExterns, err
}

// printOneFile isolates a single file's emission from the rest of the
// batch: a panic inside the printer (e.g. a pass invariant violated on
// malformed input) is logged and that file is skipped, rather than
// losing every other file's output.
func printOneFile(generator *tsprinter.Generator, script *ast.Node, log *logger.Log) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.AddError(&logger.Location{File: script.SourceFile}, fmt.Sprintf("%v", r))
			ok = false
		}
	}()
	return generator.Print(script), true
}

func basename(file string) string {
	slash := -1
	for i := len(file) - 1; i >= 0; i-- {
		if file[i] == '/' {
			slash = i
			break
		}
	}
	name := file[slash+1:]
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}
