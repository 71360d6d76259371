// Package session holds the per-operation context that error chains are
// collapsed into at the API boundary. The session owns the stored chain of
// the most recent operation; collapsing a new chain frees the previous one.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"confstore/internal/errinfo"
	"confstore/internal/platform/logger"
	"confstore/internal/platform/metrics"
)

// Auditor persists collapsed chains. Persistence is best-effort: an auditor
// failure is logged, never folded back into the operation's own chain.
type Auditor interface {
	SaveChain(ctx context.Context, sessionID uuid.UUID, code errinfo.Code, recs []errinfo.Record) error
}

// Session is one operation context. Sessions are single-owner; the stored
// chain is replaced wholesale on each collapse and readable until then.
type Session struct {
	id    uuid.UUID
	audit Auditor

	errInfo *errinfo.ErrInfo
}

// New creates a session with a fresh identifier.
func New() *Session {
	return &Session{id: uuid.New()}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// AttachAuditor makes every collapsed failure chain persist through a.
// Pass nil to detach.
func (s *Session) AttachAuditor(a Auditor) {
	s.audit = a
}

// Err returns the chain stored by the last collapsed operation, or nil when
// it succeeded. The caller must not mutate it.
func (s *Session) Err() *errinfo.ErrInfo {
	if s == nil {
		return nil
	}
	return s.errInfo
}

// Close frees the session's stored chain.
func (s *Session) Close() {
	if s != nil {
		s.errInfo.Free()
		s.errInfo = nil
	}
}

// APIRet collapses a chain at the API boundary: it frees the session's
// previous chain, stores the new one (ownership transfers to the session),
// logs every record at error severity in chronological order and returns the
// status code of the chronologically first record. An empty or nil chain
// collapses to CodeOK and leaves the session's stored chain empty.
func APIRet(s *Session, ei *errinfo.ErrInfo) errinfo.Code {
	if s != nil {
		s.errInfo.Free()
		s.errInfo = nil
	}

	if ei.Len() == 0 {
		metrics.CollapsedChains.WithLabelValues(errinfo.CodeOK.Name()).Inc()
		return errinfo.CodeOK
	}

	code := ei.Code()
	for _, r := range ei.Records() {
		logger.LogMsg(false, logger.LevelError, recordText(r))
	}
	metrics.CollapsedChains.WithLabelValues(code.Name()).Inc()

	if s != nil {
		s.errInfo = ei
		if s.audit != nil {
			saveCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.audit.SaveChain(saveCtx, s.id, code, ei.Records()); err != nil {
				logger.Logf(logger.LevelWarning, "Storing the error chain failed (%v).", err)
			}
		}
	} else {
		ei.Free()
	}

	return code
}

// CheckArg guards the top of a public operation. When valid is false it
// synthesizes a single invalid-argument record naming op, collapses it
// immediately and reports failed = true; the operation body must not run.
func CheckArg(s *Session, valid bool, op string) (code errinfo.Code, failed bool) {
	if valid {
		return errinfo.CodeOK, false
	}
	var ei *errinfo.ErrInfo
	ei = ei.InvalidArgf(op)
	return APIRet(s, ei), true
}

// recordText renders a record for the error log, appending the failing path
// when the record carries one.
func recordText(r errinfo.Record) string {
	if r.Data != nil && r.Data.Format == errinfo.DataFormatPath {
		if p, ok := r.Data.Payload.(string); ok {
			return r.Message + " (path: " + p + ")"
		}
	}
	return r.Message
}
