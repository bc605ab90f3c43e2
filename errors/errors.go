// This module implements functions which manipulate errors and provide stack
// trace information.
//
// NOTE: This package intentionally mirrors the standard "errors" module, and
// errors created here unwrap with the standard errors.Is / errors.As.
package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"runtime"
	"sync"
)

// This interface exposes additional information about the error.
type StackError interface {
	// This returns the error message without the stack trace.
	GetMessage() string

	// This returns the wrapped error.  This returns nil if this does not wrap
	// another error.
	GetInner() error

	// Implements the built-in error interface.
	Error() string

	// Returns stack frames.
	StackFrames() []StackFrame

	// Returns string representation of stack frames.
	// Stack frame formatting looks generally something like this:
	// querybuilder/database/sqlbuilder.(*QueryBuilder).Insert
	//   /src/querybuilder/database/sqlbuilder/builder.go:87 +0xbf9
	GetStack() string
}

// Represents a single stack frame.
type StackFrame struct {
	PC         uintptr
	FuncName   string
	File       string
	LineNumber int
}

type baseError struct {
	msg   string
	inner error

	stack       []uintptr
	framesOnce  sync.Once
	stackFrames []StackFrame
}

// This returns the error string without stack trace information.
func GetMessage(err interface{}) string {
	switch e := err.(type) {
	case StackError:
		return extractFullErrorMessage(e, false)
	case error:
		return e.Error()
	default:
		return "Passed a non-error to GetMessage"
	}
}

// The message chain of the error.  Use GetStack for the trace.
func (e *baseError) Error() string {
	return extractFullErrorMessage(e, false)
}

func (e *baseError) GetMessage() string {
	return e.msg
}

func (e *baseError) GetInner() error {
	return e.inner
}

// Unwrap lets the standard errors package walk the chain.
func (e *baseError) Unwrap() error {
	return e.inner
}

func (e *baseError) StackFrames() []StackFrame {
	e.framesOnce.Do(func() {
		e.stackFrames = make([]StackFrame, 0, len(e.stack))
		frames := runtime.CallersFrames(e.stack)
		for {
			frame, more := frames.Next()
			e.stackFrames = append(e.stackFrames, StackFrame{
				PC:         frame.PC,
				FuncName:   frame.Function,
				File:       frame.File,
				LineNumber: frame.Line,
			})
			if !more {
				break
			}
		}
	})
	return e.stackFrames
}

func (e *baseError) GetStack() string {
	buf := bytes.NewBuffer(make([]byte, 0, 256))
	for _, frame := range e.StackFrames() {
		_, _ = buf.WriteString(frame.FuncName)
		_, _ = buf.WriteString("\n")
		fmt.Fprintf(buf, "\t%s:%d +0x%x\n",
			frame.File, frame.LineNumber, frame.PC)
	}
	return buf.String()
}

// This returns a new baseError initialized with the given message and
// the current stack trace.
func New(msg string) StackError {
	return newError(nil, msg)
}

// Same as New, but with fmt.Printf-style parameters.
func Newf(format string, args ...interface{}) StackError {
	return newError(nil, fmt.Sprintf(format, args...))
}

// Wraps another error in a new baseError.
func Wrap(err error, msg string) StackError {
	return newError(err, msg)
}

// Same as Wrap, but with fmt.Printf-style parameters.
func Wrapf(err error, format string, args ...interface{}) StackError {
	return newError(err, fmt.Sprintf(format, args...))
}

// Sentinel returns a plain, stackless error suitable for package level
// error values that are compared against with IsError.
func Sentinel(msg string) error {
	return stderrors.New(msg)
}

// Stack frame information includes the caller of New/Wrap, so this must only
// ever be called directly from those.
func newError(err error, msg string) *baseError {
	stack := make([]uintptr, 64)
	stackLength := runtime.Callers(3, stack)
	return &baseError{
		msg:   msg,
		stack: stack[:stackLength],
		inner: err,
	}
}

// Constructs the full message for a given StackError by traversing all of its
// inner errors, joined with ": ".  If includeStack is true, the stack trace of
// the deepest StackError in the chain is appended.
func extractFullErrorMessage(e StackError, includeStack bool) string {
	var lastErr StackError
	errMsg := bytes.NewBuffer(make([]byte, 0, 256))

	cur := e
	for {
		lastErr = cur
		errMsg.WriteString(cur.GetMessage())

		innerErr := cur.GetInner()
		if innerErr == nil {
			break
		}
		errMsg.WriteString(": ")

		next, ok := innerErr.(StackError)
		if !ok {
			errMsg.WriteString(innerErr.Error())
			break
		}
		cur = next
	}
	if includeStack {
		errMsg.WriteString("\nORIGINAL STACK TRACE:\n")
		errMsg.WriteString(lastErr.GetStack())
	}
	return errMsg.String()
}

// DetailedMessage returns the full message chain followed by the stack trace.
func DetailedMessage(err error) string {
	if e, ok := err.(StackError); ok {
		return extractFullErrorMessage(e, true)
	}
	return err.Error()
}

// Keep peeling away layers of context until a primitive error is revealed.
func RootError(ierr error) (nerr error) {
	nerr = ierr
	for i := 0; i < 20; i++ {
		terr := stderrors.Unwrap(nerr)
		if terr == nil {
			return nerr
		}
		nerr = terr
	}
	return fmt.Errorf("too many iterations: %T", nerr)
}

// Perform a deep check, unwrapping errors as much as possible and comparing
// identity first, then the string version of the root error.
func IsError(err, errConst error) bool {
	if err == errConst {
		return true
	}
	if err == nil || errConst == nil {
		return false
	}
	if stderrors.Is(err, errConst) {
		return true
	}
	// Must rely on string equivalence, otherwise a value is not equal
	// to its pointer value.
	return RootError(err).Error() == errConst.Error()
}
