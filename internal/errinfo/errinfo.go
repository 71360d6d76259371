package errinfo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"runtime"
	"strings"
)

// Data is an optional structured payload attached to a record, tagged with
// the format the payload is expressed in (e.g. "path").
type Data struct {
	Format  string
	Payload any
}

// DataFormatPath tags a Data payload holding a failing filesystem or data path.
const DataFormatPath = "path"

// Record is one immutable classified failure: a code from the closed set, the
// fully rendered message and an optional structured payload.
type Record struct {
	Code    Code
	Message string
	Data    *Data
}

// ErrInfo is an ordered chain of Records, oldest first. The zero value and
// nil are both valid empty chains; consumers must treat them identically.
type ErrInfo struct {
	recs []Record
}

// Len returns the number of records in the chain. Safe on nil.
func (ei *ErrInfo) Len() int {
	if ei == nil {
		return 0
	}
	return len(ei.recs)
}

// Records returns a copy of the chain's records in chronological order.
func (ei *ErrInfo) Records() []Record {
	if ei == nil || len(ei.recs) == 0 {
		return nil
	}
	out := make([]Record, len(ei.recs))
	copy(out, ei.recs)
	return out
}

// First returns the chronologically first record, the primary cause of the
// failure. ok is false on an empty chain.
func (ei *ErrInfo) First() (Record, bool) {
	if ei.Len() == 0 {
		return Record{}, false
	}
	return ei.recs[0], true
}

// Code returns the first record's code, or CodeOK on an empty chain.
func (ei *ErrInfo) Code() Code {
	if r, ok := ei.First(); ok {
		return r.Code
	}
	return CodeOK
}

// Error joins the messages of all records, oldest first.
func (ei *ErrInfo) Error() string {
	if ei.Len() == 0 {
		return codeText[CodeOK]
	}
	msgs := make([]string, len(ei.recs))
	for i, r := range ei.recs {
		msgs[i] = r.Message
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the first record's code so errors.Is(ei, errinfo.CodeSys)
// classifies a chain by its primary cause.
func (ei *ErrInfo) Unwrap() error {
	if ei.Len() == 0 {
		return nil
	}
	return ei.recs[0].Code
}

func (ei *ErrInfo) append(r Record) *ErrInfo {
	if ei == nil {
		ei = &ErrInfo{}
	}
	ei.recs = append(ei.recs, r)
	return ei
}

// Errf renders the message eagerly and appends a new record to the chain,
// allocating the chain when it does not exist yet.
func (ei *ErrInfo) Errf(code Code, format string, args ...any) *ErrInfo {
	return ei.append(Record{Code: code, Message: fmt.Sprintf(format, args...)})
}

// ErrData is Errf with a structured payload attached to the record. The
// payload is stored as given; callers must not hand over memory they intend
// to reuse before the chain is collapsed.
func (ei *ErrInfo) ErrData(code Code, dataFormat string, payload any, format string, args ...any) *ErrInfo {
	return ei.append(Record{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Data:    &Data{Format: dataFormat, Payload: payload},
	})
}

// NoMem appends the canonical out-of-memory record. Previously accumulated
// records are kept; an allocation failure never truncates the chain.
func (ei *ErrInfo) NoMem() *ErrInfo {
	return ei.append(Record{Code: CodeNoMem, Message: "Memory allocation failed."})
}

// Internal appends an internal-error record naming the caller's source
// location.
func (ei *ErrInfo) Internal() *ErrInfo {
	file, line := "?", 0
	if _, f, l, ok := runtime.Caller(1); ok {
		file, line = f, l
	}
	return ei.Errf(CodeInternal, "Internal error (%s:%d).", file, line)
}

// Lockf appends a lock-acquisition failure for op, classifying the timeout
// sub-kind when the underlying error reports one.
func (ei *ErrInfo) Lockf(op string, err error) *ErrInfo {
	code := CodeLockFailed
	if isTimeout(err) {
		code = CodeLockTimeout
	}
	return ei.Errf(code, "Locking a mutex failed (%s: %v).", op, err)
}

// Condf appends a condition-wait failure for op, classifying the timeout
// sub-kind when the underlying error reports one.
func (ei *ErrInfo) Condf(op string, err error) *ErrInfo {
	code := CodeCondFailed
	if isTimeout(err) {
		code = CodeCondTimeout
	}
	return ei.Errf(code, "Waiting on a conditional variable failed (%s: %v).", op, err)
}

// Sysf appends a system-call failure, capturing the platform error text.
func (ei *ErrInfo) Sysf(call string, err error) *ErrInfo {
	return ei.Errf(CodeSys, "%s() failed (%v).", call, err)
}

// SysPathf appends a system-call failure qualified by a filesystem path. The
// path is part of the rendered message, so no separate payload is attached.
func (ei *ErrInfo) SysPathf(call, path string, err error) *ErrInfo {
	return ei.Errf(CodeSysPath, "%s() on %q failed (%v).", call, path, err)
}

// Validation appends the generic validation-failed marker.
func (ei *ErrInfo) Validation() *ErrInfo {
	return ei.Errf(CodeValidationFailed, "Validation failed.")
}

// InvalidArgf appends an invalid-argument record naming the public operation
// whose arguments were rejected.
func (ei *ErrInfo) InvalidArgf(op string) *ErrInfo {
	return ei.Errf(CodeInvalidArg, "Invalid arguments for operation %q.", op)
}

// Merge moves every record of src onto ei preserving order and leaves src
// consumed and empty; src must not be used as a chain afterwards. Merging an
// empty src is a no-op, merging into a nil ei creates the destination.
func (ei *ErrInfo) Merge(src *ErrInfo) *ErrInfo {
	if src == nil || len(src.recs) == 0 {
		return ei
	}
	if ei == nil {
		ei = &ErrInfo{}
	}
	ei.recs = append(ei.recs, src.recs...)
	src.recs = nil
	return ei
}

// Free releases the chain's records. Safe on nil and on an already freed
// chain.
func (ei *ErrInfo) Free() {
	if ei != nil {
		ei.recs = nil
	}
}

// isTimeout mirrors the classification used across the codebase: deadline
// errors, os timeouts and net.Error timeouts all count.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
