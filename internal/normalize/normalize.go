// Package normalize maps raw source records onto the canonical transaction
// shape. Each normalizer is a pure function: the same raw record always
// yields the same canonical transaction, and a parsing failure on a
// required field fails only that record.
package normalize

import (
	"strings"
	"time"
)

// Date layouts used by the sources.
const (
	layoutCardDate     = "02/01/2006"
	layoutSheetDate    = "02/01/2006 15:04:05"
	layoutISODate      = "2006-01-02"
	layoutISOTimestamp = time.RFC3339
)

// joinNonEmpty concatenates the non-empty parts with single spaces. Empty
// components are tolerated, never an error.
func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
