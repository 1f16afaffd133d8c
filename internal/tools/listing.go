package tools

import (
	"strings"
	"time"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

// now is replaced in tests.
var now = time.Now

// AssignmentSummary is the compact projection of an assignment.
type AssignmentSummary struct {
	ID             *int64   `json:"id"`
	Name           string   `json:"name"`
	DueAt          *string  `json:"due_at"`
	UnlockAt       *string  `json:"unlock_at"`
	LockAt         *string  `json:"lock_at"`
	PointsPossible *float64 `json:"points_possible"`
	Published      *bool    `json:"published"`
}

// Summarize projects an assignment to its compact form.
func Summarize(a canvas.Assignment) AssignmentSummary {
	return AssignmentSummary{
		ID:             a.ID,
		Name:           a.Name,
		DueAt:          a.DueAt,
		UnlockAt:       a.UnlockAt,
		LockAt:         a.LockAt,
		PointsPossible: a.PointsPossible,
		Published:      a.Published,
	}
}

// AssignmentFilter selects assignments for listing.
type AssignmentFilter struct {
	Search       string // case-insensitive name substring, empty matches all
	UpcomingOnly bool   // keep only assignments due at or after now
	Limit        int    // 0 means no limit
}

// FilterAssignments applies f, preserving Canvas order.
func FilterAssignments(list []canvas.Assignment, f AssignmentFilter) []canvas.Assignment {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	at := now()
	out := make([]canvas.Assignment, 0, len(list))
	for _, a := range list {
		if search != "" && !strings.Contains(strings.ToLower(a.Name), search) {
			continue
		}
		if f.UpcomingOnly && !dueOnOrAfter(a.DueAt, at) {
			continue
		}
		out = append(out, a)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// ClampLimit bounds n to [lo, hi].
func ClampLimit(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func parseCanvasTime(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func dueOnOrAfter(due *string, at time.Time) bool {
	t, ok := parseCanvasTime(due)
	return ok && !t.Before(at)
}

func dueAfter(due *string, at time.Time) bool {
	t, ok := parseCanvasTime(due)
	return ok && t.After(at)
}
