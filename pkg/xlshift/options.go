// Package xlshift inserts groups of rows after anchor rows of a target
// sheet in an xlsx workbook, cloning the anchor's formatting and non-key
// formulas into each inserted row and rewriting cross-sheet references so
// they keep pointing at the same logical row.
package xlshift

import "github.com/rs/zerolog"

// Options configures an insertion run.
type Options struct {
	// KeyColumns are the 1-based column numbers receiving the caller's
	// payload values; every other column of an inserted row is templated
	// from the anchor row. Payload length must match.
	KeyColumns []int
	// Logger receives per-stage progress events. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// DefaultOptions returns the default configuration: key columns I and J,
// no logging.
func DefaultOptions() Options {
	return Options{
		KeyColumns: []int{9, 10},
		Logger:     zerolog.Nop(),
	}
}

// withDefaults fills unset fields from DefaultOptions.
func (o Options) withDefaults() Options {
	if len(o.KeyColumns) == 0 {
		o.KeyColumns = DefaultOptions().KeyColumns
	}
	return o
}
