// Package retention ages out persisted error chains on a cron schedule.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"confstore/internal/platform/logger"
	"confstore/internal/platform/metrics"
	"confstore/internal/platform/store"
)

// Janitor periodically purges audit rows older than the retention age.
type Janitor struct {
	c      *cron.Cron
	st     *store.Store
	maxAge time.Duration
}

// cronLogger адаптер для интеграции cron logger с нашим диспетчером.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Logf(logger.LevelDebug, "retention: %s%s", msg, renderKV(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Logf(logger.LevelWarning, "retention: %s (%v)%s", msg, err, renderKV(keysAndValues))
}

func renderKV(kv []interface{}) string {
	out := ""
	for i := 0; i+1 < len(kv); i += 2 {
		out += fmt.Sprintf(" %v=%v", kv[i], kv[i+1])
	}
	return out
}

// New creates a janitor purging rows older than maxAge on the given cron
// schedule (standard 5-field spec).
func New(st *store.Store, schedule string, maxAge time.Duration) (*Janitor, error) {
	j := &Janitor{
		c:      cron.New(cron.WithLogger(cronLogger{})),
		st:     st,
		maxAge: maxAge,
	}
	if _, err := j.c.AddFunc(schedule, j.run); err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Start begins scheduling. Idempotent.
func (j *Janitor) Start() {
	j.c.Start()
}

// Stop stops scheduling and waits for a running purge to finish.
func (j *Janitor) Stop() {
	<-j.c.Stop().Done()
}

// Run purges immediately, outside the schedule. Used at start-up and by
// tests.
func (j *Janitor) Run() {
	j.run()
}

func (j *Janitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := j.st.Purge(ctx, time.Now().Add(-j.maxAge))
	if err != nil {
		logger.Logf(logger.LevelWarning, "Purging aged audit rows failed (%v).", err)
		return
	}
	if n > 0 {
		metrics.AuditRowsPurged.Add(float64(n))
		logger.Logf(logger.LevelInfo, "Purged %d audit rows older than %s.", n, j.maxAge)
	}
}
