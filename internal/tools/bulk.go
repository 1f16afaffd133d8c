package tools

import (
	"context"
	"strings"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

const (
	bulkDefaultLimit = 20
	bulkMaxLimit     = 100
)

// Per-item outcome of a bulk due-date change.
const (
	BulkMatchedOnly = "matched_only"
	BulkUpdated     = "updated"
	BulkError       = "error"
)

// BulkDueDateRequest moves the due date of every assignment whose name
// contains all query terms.
type BulkDueDateRequest struct {
	QueryTerms []string `json:"query_terms"`
	DueAt      *string  `json:"due_at"`
	Limit      *int     `json:"limit,omitempty"`
	DryRun     bool     `json:"dry_run"`
}

// Validate checks the request before any network call.
func (r *BulkDueDateRequest) Validate() error {
	var fields []FieldError
	if len(normalizeTerms(r.QueryTerms)) == 0 {
		fields = append(fields, FieldError{Field: "query_terms", Problem: "must contain at least one non-empty term"})
	}
	if r.DueAt == nil || strings.TrimSpace(*r.DueAt) == "" {
		fields = append(fields, FieldError{Field: "due_at", Problem: "is required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// BulkDueDateItem is the outcome for one matched assignment.
type BulkDueDateItem struct {
	AssignmentID  *int64  `json:"assignment_id"`
	Name          string  `json:"name"`
	PreviousDueAt *string `json:"previous_due_at"`
	NewDueAt      string  `json:"new_due_at"`
	Status        string  `json:"status"`
	Error         string  `json:"error,omitempty"`
}

// BulkDueDateResult aggregates the per-item outcomes.
type BulkDueDateResult struct {
	CourseID     int64             `json:"course_id"`
	QueryTerms   []string          `json:"query_terms"`
	DueAt        string            `json:"due_at"`
	DryRun       bool              `json:"dry_run"`
	MatchedCount int               `json:"matched_count"`
	UpdatedCount int               `json:"updated_count"`
	ErrorCount   int               `json:"error_count"`
	Items        []BulkDueDateItem `json:"items"`
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// BulkUpdateDueDates matches assignments and, unless DryRun is set, updates
// each one sequentially. One item's failure never aborts the others.
func BulkUpdateDueDates(ctx context.Context, c *canvas.Client, courseID int64, req BulkDueDateRequest) (*BulkDueDateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	terms := normalizeTerms(req.QueryTerms)
	limit := bulkDefaultLimit
	if req.Limit != nil {
		limit = ClampLimit(*req.Limit, 1, bulkMaxLimit)
	}
	dueAt := strings.TrimSpace(*req.DueAt)

	assignments, err := c.ListAssignments(ctx, courseID)
	if err != nil {
		return nil, err
	}

	res := &BulkDueDateResult{
		CourseID:   courseID,
		QueryTerms: terms,
		DueAt:      dueAt,
		DryRun:     req.DryRun,
		Items:      []BulkDueDateItem{},
	}
	for _, a := range assignments {
		if len(res.Items) == limit {
			break
		}
		if !matchesAll(a.Name, terms) {
			continue
		}
		item := BulkDueDateItem{
			AssignmentID:  a.ID,
			Name:          a.Name,
			PreviousDueAt: a.DueAt,
			NewDueAt:      dueAt,
		}
		switch {
		case req.DryRun:
			item.Status = BulkMatchedOnly
		case a.ID == nil:
			item.Status = BulkError
			item.Error = "assignment has no id"
		default:
			if _, err := c.UpdateAssignmentDates(ctx, courseID, *a.ID, canvas.DateUpdate{DueAt: canvas.Date(dueAt)}); err != nil {
				item.Status = BulkError
				item.Error = err.Error()
			} else {
				item.Status = BulkUpdated
			}
		}
		res.Items = append(res.Items, item)
	}

	res.MatchedCount = len(res.Items)
	for _, it := range res.Items {
		switch it.Status {
		case BulkUpdated:
			res.UpdatedCount++
		case BulkError:
			res.ErrorCount++
		}
	}
	return res, nil
}

func matchesAll(name string, terms []string) bool {
	lower := strings.ToLower(name)
	for _, t := range terms {
		if !strings.Contains(lower, t) {
			return false
		}
	}
	return true
}
