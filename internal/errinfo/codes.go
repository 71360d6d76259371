package errinfo

// Code classifies a failure. The set is closed: callers pick one of the
// constants below, never an open string. Code implements error so a chain can
// be classified with errors.Is without inspecting its records.
type Code int

const (
	// CodeOK means the operation succeeded.
	CodeOK Code = iota
	// CodeInvalidArg means a public operation was called with invalid arguments.
	CodeInvalidArg
	// CodeEngine means the schema/validation engine reported an error.
	CodeEngine
	// CodeSys means a system call failed.
	CodeSys
	// CodeSysPath means a system call failed on a named filesystem path.
	CodeSysPath
	// CodeNoMem means memory allocation failed.
	CodeNoMem
	// CodeNotFound means a requested item was not found.
	CodeNotFound
	// CodeExists means an item already exists.
	CodeExists
	// CodeInternal means an internal error or violated assertion.
	CodeInternal
	// CodeUnsupported means the operation is not supported.
	CodeUnsupported
	// CodeValidationFailed means data validation failed.
	CodeValidationFailed
	// CodeOperationFailed means the operation failed for a domain reason.
	CodeOperationFailed
	// CodeUnauthorized means the operation is not authorized.
	CodeUnauthorized
	// CodeLocked means the requested resource is already locked.
	CodeLocked
	// CodeLockFailed means acquiring a lock failed.
	CodeLockFailed
	// CodeLockTimeout means acquiring a lock timed out.
	CodeLockTimeout
	// CodeCondFailed means waiting on a condition failed.
	CodeCondFailed
	// CodeCondTimeout means waiting on a condition timed out.
	CodeCondTimeout
	// CodeCallbackFailed means a user callback failed.
	CodeCallbackFailed
)

var codeText = map[Code]string{
	CodeOK:               "Operation succeeded",
	CodeInvalidArg:       "Invalid argument",
	CodeEngine:           "Schema engine error",
	CodeSys:              "System function call failed",
	CodeSysPath:          "System function call failed on a path",
	CodeNoMem:            "Out of memory",
	CodeNotFound:         "Item not found",
	CodeExists:           "Item already exists",
	CodeInternal:         "Internal error",
	CodeUnsupported:      "Operation not supported",
	CodeValidationFailed: "Validation failed",
	CodeOperationFailed:  "Operation failed",
	CodeUnauthorized:     "Operation not authorized",
	CodeLocked:           "Requested resource already locked",
	CodeLockFailed:       "Lock acquisition failed",
	CodeLockTimeout:      "Lock acquisition timed out",
	CodeCondFailed:       "Condition wait failed",
	CodeCondTimeout:      "Condition wait timed out",
	CodeCallbackFailed:   "User callback failed",
}

var codeName = map[Code]string{
	CodeOK:               "ok",
	CodeInvalidArg:       "invalid_arg",
	CodeEngine:           "engine",
	CodeSys:              "sys",
	CodeSysPath:          "sys_path",
	CodeNoMem:            "no_mem",
	CodeNotFound:         "not_found",
	CodeExists:           "exists",
	CodeInternal:         "internal",
	CodeUnsupported:      "unsupported",
	CodeValidationFailed: "validation_failed",
	CodeOperationFailed:  "operation_failed",
	CodeUnauthorized:     "unauthorized",
	CodeLocked:           "locked",
	CodeLockFailed:       "lock_failed",
	CodeLockTimeout:      "lock_timeout",
	CodeCondFailed:       "cond_failed",
	CodeCondTimeout:      "cond_timeout",
	CodeCallbackFailed:   "callback_failed",
}

// Name returns the stable machine-facing token for the code, usable as a
// metric label.
func (c Code) Name() string {
	if s, ok := codeName[c]; ok {
		return s
	}
	return "unknown"
}

// String returns the canonical human-readable description of the code.
func (c Code) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return "Unknown error"
}

// Error makes Code usable as a sentinel with errors.Is.
func (c Code) Error() string {
	return c.String()
}
