// Package seed copies nflverse datasets into Postgres so API instances in
// postgres mode can serve them without touching the upstream.
package seed

import (
	"fmt"
	"time"
)

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	RunID         string
	TablesWritten int
	RowsWritten   int64
	Errors        []string
	Duration      time.Duration
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.TablesWritten += other.TablesWritten
	r.RowsWritten += other.RowsWritten
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// OK reports whether every table was written.
func (r *SeedResult) OK() bool { return len(r.Errors) == 0 }

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf("run=%s tables=%d rows=%d errors=%d",
		r.RunID, r.TablesWritten, r.RowsWritten, len(r.Errors))
}
