// Package engine defines the boundary to the external schema/validation
// engine. The datastore core never inspects engine internals; it only reads
// and clears the engine's ordered error queue and, optionally, resolves a
// richer error context reachable from a data tree node.
package engine

// Level is the severity the engine assigned to one of its own errors.
type Level int

const (
	// LevelError marks an engine error that failed the operation.
	LevelError Level = iota
	// LevelWarning marks a diagnostic that should be surfaced but not stored.
	LevelWarning
)

// Error is a single error reported by the engine, in the engine's own terms.
type Error struct {
	Level   Level
	Code    string
	Message string
	Path    string
}

// Context is the engine-side error queue. Errors returns the pending errors
// oldest first; ClearErrors drops them so they are never reported twice.
type Context interface {
	Errors() []Error
	ClearErrors()
}

// Node is a node of an engine data tree. A node may belong to an extension
// with its own Context holding the actual errors; ExtContext returns it, or
// nil when the node carries no extension context.
type Node interface {
	ExtContext() Context
}
