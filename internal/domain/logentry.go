package domain

import (
	"fmt"
	"time"
)

// MaxLogEntries bounds the activity log; older entries are evicted first.
const MaxLogEntries = 100

type LogEntry struct {
	Type   LogType   `json:"type"`
	Title  string    `json:"title"`
	Detail string    `json:"detail"`
	TS     time.Time `json:"ts"`
}

func (e LogEntry) Validate() error {
	if !e.Type.Valid() {
		return newValidationError("type", "%q is not a log entry type", e.Type)
	}
	if e.TS.IsZero() {
		return newValidationError("ts", "is required")
	}
	return nil
}

// MoveDetail formats the detail line of a moved entry.
func MoveDetail(from, to Column) string {
	return fmt.Sprintf("%s → %s", from, to)
}

func CreatedDetail(col Column) string { return "Added to " + string(col) }

func EditedDetail(col Column) string { return "Updated in " + string(col) }

func DeletedDetail(col Column) string { return "Removed from " + string(col) }
