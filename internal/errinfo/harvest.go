package errinfo

import (
	"confstore/internal/engine"
	"confstore/internal/platform/logger"
)

// HarvestAll translates every error pending in the engine's queue into chain
// records, appending them in queue order, and clears the queue so the same
// errors are never reported twice. Warnings in the queue are logged at
// warning severity instead of being recorded.
//
// When data is supplied and an extension context reachable from it holds
// pending errors, that richer context is harvested in place of the engine's
// own queue.
func HarvestAll(ei *ErrInfo, ectx engine.Context, data engine.Node) *ErrInfo {
	ectx = resolveContext(ectx, data)
	if ectx == nil {
		return ei
	}
	for _, e := range ectx.Errors() {
		ei = harvestOne(ei, e)
	}
	ectx.ClearErrors()
	return ei
}

// HarvestFirst translates only the first pending engine error and clears the
// queue. Used where a single fatal cause suffices and enumerating the rest
// would be misleading.
func HarvestFirst(ei *ErrInfo, ectx engine.Context) *ErrInfo {
	if ectx == nil {
		return ei
	}
	if errs := ectx.Errors(); len(errs) > 0 {
		ei = harvestOne(ei, errs[0])
	}
	ectx.ClearErrors()
	return ei
}

// WarnAll forwards every pending engine error to the log dispatcher at
// warning severity. No records are created and the engine queue is left
// intact.
func WarnAll(ectx engine.Context) {
	if ectx == nil {
		return
	}
	for _, e := range ectx.Errors() {
		logger.LogMsg(false, logger.LevelWarning, engineMessage(e))
	}
}

func harvestOne(ei *ErrInfo, e engine.Error) *ErrInfo {
	if e.Level == engine.LevelWarning {
		logger.LogMsg(false, logger.LevelWarning, engineMessage(e))
		return ei
	}
	// The path travels as a structured payload, not inside the message; the
	// collapse step appends it when the record is logged.
	if e.Path != "" {
		return ei.ErrData(CodeEngine, DataFormatPath, e.Path, "%s", engineText(e))
	}
	return ei.Errf(CodeEngine, "%s", engineText(e))
}

// engineText renders an engine error's message. The exact wording is
// engine-specific and treated as opaque by callers.
func engineText(e engine.Error) string {
	if e.Message != "" {
		return e.Message
	}
	msg := "Unknown schema engine error"
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	return msg
}

// engineMessage renders an engine error for direct logging, path included.
func engineMessage(e engine.Error) string {
	msg := engineText(e)
	if e.Path != "" {
		msg += " (path: " + e.Path + ")"
	}
	return msg
}

// resolveContext prefers an extension context hanging off the data tree when
// it has pending errors of its own.
func resolveContext(ectx engine.Context, data engine.Node) engine.Context {
	if data == nil {
		return ectx
	}
	if ext := data.ExtContext(); ext != nil && len(ext.Errors()) > 0 {
		return ext
	}
	return ectx
}
