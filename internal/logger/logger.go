// Package logger is the single diagnostic sink for every pass in this
// module: a Msg/MsgKind/Log shape with deterministic
// sort-by-location-then-kind-then-text ordering, and none of the
// source-map or bundling concerns (Range, Source, Path) this module has
// no use for.
package logger

import (
	"fmt"
	"os"
	"sort"
)

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Info
)

func (k MsgKind) String() string {
	switch k {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

type Location struct {
	File string
	Line int // 1-based; 0 means unknown
}

type Msg struct {
	Kind     MsgKind
	Text     string
	Location *Location
}

type LogLevel int8

const (
	LevelError LogLevel = iota
	LevelWarning
	LevelInfo
	LevelSilent
)

// Log collects diagnostics for one compilation. It is owned by the driver
// (internal/transpile) for the duration of a run and lent to every pass
// that needs to report something.
type Log struct {
	level    LogLevel
	messages []Msg
}

func NewLog(level LogLevel) *Log {
	return &Log{level: level}
}

func (l *Log) AddError(loc *Location, text string) {
	l.add(Msg{Kind: Error, Text: text, Location: loc})
}

func (l *Log) AddWarning(loc *Location, text string) {
	if l.level == LevelWarning || l.level == LevelInfo {
		l.add(Msg{Kind: Warning, Text: text, Location: loc})
	}
}

func (l *Log) AddInfo(loc *Location, text string) {
	if l.level == LevelInfo {
		l.add(Msg{Kind: Info, Text: text, Location: loc})
	}
}

func (l *Log) add(msg Msg) {
	l.messages = append(l.messages, msg)
}

func (l *Log) HasErrors() bool {
	for _, msg := range l.messages {
		if msg.Kind == Error {
			return true
		}
	}
	return false
}

// Done returns every collected message sorted by file, then line, then
// kind, then text, so output is deterministic across runs.
func (l *Log) Done() []Msg {
	sorted := make([]Msg, len(l.messages))
	copy(sorted, l.messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func less(a, b Msg) bool {
	al, bl := a.Location, b.Location
	if al == nil && bl != nil {
		return true
	}
	if al != nil && bl == nil {
		return false
	}
	if al != nil && bl != nil {
		if al.File != bl.File {
			return al.File < bl.File
		}
		if al.Line != bl.Line {
			return al.Line < bl.Line
		}
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Text < b.Text
}

// PrintToStderr renders every message in clang-like "file:line: kind: text"
// form, with no color support — this module has no interactive terminal
// use case that would benefit from it.
func PrintToStderr(messages []Msg) {
	for _, msg := range messages {
		if msg.Location != nil && msg.Location.File != "" {
			if msg.Location.Line > 0 {
				fmt.Fprintf(os.Stderr, "%s:%d: %s: %s\n", msg.Location.File, msg.Location.Line, msg.Kind, msg.Text)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %s: %s\n", msg.Location.File, msg.Kind, msg.Text)
			}
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s\n", msg.Kind, msg.Text)
		}
	}
}
