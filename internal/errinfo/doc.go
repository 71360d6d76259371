// Package errinfo implements the ordered, typed error chain carried by every
// datastore operation, and the harvester translating schema-engine errors
// into the same representation.
//
// # Error Chains
//
// A chain is an ordered sequence of immutable records, oldest first. The
// chronologically first record is the primary cause of the failure; later
// records are contextual detail. A nil *ErrInfo is a valid empty chain, and
// every constructor returns the (possibly newly allocated) chain, so deep
// call graphs thread a single accumulator without extra return plumbing:
//
//	func loadModule(ei *errinfo.ErrInfo, name string) *errinfo.ErrInfo {
//	    f, err := os.Open(path(name))
//	    if err != nil {
//	        return ei.SysPathf("open", path(name), err)
//	    }
//	    ...
//	}
//
// Chains are single-writer: they belong to one operation invocation and must
// never be mutated concurrently. No internal locking is provided.
//
// # Codes
//
// Every record carries a Code from a closed set. Code implements error, so a
// returned chain classifies with the standard tooling:
//
//	if errors.Is(ei, errinfo.CodeLockTimeout) {
//	    // retry is up to the caller; this package only classifies
//	}
//
// # Merging
//
// Merge moves records from one chain onto another; the source is consumed
// and must not be used afterwards. Sub-operations build their own chains and
// the parent merges them in failure order.
//
// # Harvesting
//
// HarvestAll, HarvestFirst and WarnAll translate the pending errors of an
// external schema/validation engine (see the engine package) into records,
// or forward them straight to the log dispatcher as warnings. The generated
// message text is engine-specific and deliberately opaque: rely on record
// presence and order, not wording.
//
// # Collapse
//
// Chains are not converted to status codes here; only the API boundary does
// that (see the session package). Intermediate layers must keep propagating
// the chain so first-cause attribution stays accurate.
package errinfo
