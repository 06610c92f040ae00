// Error wrapper knowing where it was created.
//
// Usage:
//
//	wrapped := xerrors.Wrap(err)
//
// `wrapped` remembers filename, line and function name of the caller.
// Messages of nested wrapped errors chain with "<-", so reading them
// from left to right follows the call stack outside-in.
package xerrors

import (
	"errors"
	"fmt"
	"runtime"
)

type ErrWithCaller struct {
	file     string
	line     int
	funcname string
	note     string
	err      error
}

func (e *ErrWithCaller) File() string {
	return e.file
}

func (e *ErrWithCaller) Line() int {
	return e.line
}

func (e *ErrWithCaller) Error() string {
	if e.note == "" {
		return fmt.Sprintf(`@ %s "%s" l%d <- %s`, e.funcname, e.file, e.line, e.err.Error())
	}
	return fmt.Sprintf(`@ %s "%s" l%d (%s) <- %s`, e.funcname, e.file, e.line, e.note, e.err.Error())
}

func (e *ErrWithCaller) Unwrap() error {
	return e.err
}

// New creates a caller-annotated error from a message.
func New(text string) error {
	return wrap("", errors.New(text), 1)
}

// Wrap marks err with the location of the caller.
func Wrap(err error) error {
	return wrap("", err, 1)
}

// WrapWithNote is Wrap + a short note about the situation.
func WrapWithNote(note string, err error) error {
	return wrap(note, err, 1)
}

// WrapAsOuter marks err with the location `depth` frames above the caller.
func WrapAsOuter(err error, depth int) error {
	return wrap("", err, depth+1)
}

func wrap(note string, err error, depth int) error {
	pc, file, line, ok := runtime.Caller(depth + 1)
	funcname := "(unknown func)"
	if !ok {
		file = "?"
		line = -1
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcname = fn.Name()
	}
	return &ErrWithCaller{
		file: file, line: line, funcname: funcname,
		note: note, err: err,
	}
}
