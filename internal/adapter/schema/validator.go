// Package schema adapts a go-playground/validator instance to the engine
// boundary. A failed validation fills the adapter's error queue with one
// engine error per violated constraint, field namespaces rendered as data
// paths, so the harvester can translate them like any other engine's errors.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"confstore/internal/engine"
)

// Engine wraps a validator and queues its errors engine-style. Like the
// engine contexts it stands in for, an Engine is single-owner: one operation
// validates and harvests at a time.
type Engine struct {
	v    *validator.Validate
	errs []engine.Error
}

var _ engine.Context = (*Engine)(nil)

// New creates an Engine with a fresh validator.
func New() *Engine {
	return &Engine{v: validator.New()}
}

// Validator exposes the underlying validator for custom tag registration.
func (e *Engine) Validator() *validator.Validate {
	return e.v
}

// ValidateStruct validates s and reports whether it passed. On failure the
// violated constraints are queued as engine errors until harvested.
func (e *Engine) ValidateStruct(s any) bool {
	err := e.v.Struct(s)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		e.errs = append(e.errs, engine.Error{
			Level:   engine.LevelError,
			Message: err.Error(),
		})
		return false
	}
	for _, fe := range verrs {
		e.errs = append(e.errs, engine.Error{
			Level:   engine.LevelError,
			Code:    fe.Tag(),
			Message: fmt.Sprintf("Value %q of field %q does not satisfy the %q constraint.", fmt.Sprint(fe.Value()), fe.Field(), fe.Tag()),
			Path:    namespacePath(fe.Namespace()),
		})
	}
	return false
}

// Errors returns the queued errors, oldest first.
func (e *Engine) Errors() []engine.Error {
	if len(e.errs) == 0 {
		return nil
	}
	out := make([]engine.Error, len(e.errs))
	copy(out, e.errs)
	return out
}

// ClearErrors drops the queued errors.
func (e *Engine) ClearErrors() {
	e.errs = nil
}

// namespacePath turns a validator namespace ("Config.Log.File") into a
// datastore-style path ("/Config/Log/File").
func namespacePath(ns string) string {
	if ns == "" {
		return ""
	}
	return "/" + strings.ReplaceAll(ns, ".", "/")
}
