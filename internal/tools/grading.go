package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

// Submission status filters for batch grading.
const (
	FilterUnsubmitted = "unsubmitted"
	FilterMissing     = "missing"
	FilterLate        = "late"
)

var filterStatuses = []string{FilterUnsubmitted, FilterMissing, FilterLate}

const noStudentsMatched = "No students found matching the criteria."

// BatchGradeRequest grades many students with the same grade.
type BatchGradeRequest struct {
	CourseID         Identifier              `json:"course_id"`
	AssignmentID     ID                      `json:"assignment_id"`
	Grade            Grade                   `json:"grade"`
	Comment          string                  `json:"comment,omitempty"`
	StudentIDs       []ID                    `json:"student_ids,omitempty"`
	FilterStatus     string                  `json:"filter_status,omitempty"`
	RubricAssessment canvas.RubricAssessment `json:"rubric_assessment,omitempty"`
}

// Validate requires one way of choosing students.
func (r *BatchGradeRequest) Validate() error {
	if r.StudentIDs == nil && r.FilterStatus == "" {
		return &ValidationError{
			Message: "You must provide either student_ids or a filter_status (e.g. 'unsubmitted')",
			Fields: []FieldError{
				{Field: "student_ids", Problem: "or filter_status is required"},
				{Field: "filter_status", Problem: "or student_ids is required"},
			},
		}
	}
	return nil
}

// GradeOutcome is the per-student result of a batch grade.
type GradeOutcome struct {
	StudentID int64  `json:"student_id"`
	Status    string `json:"status"`
	Grade     *Grade `json:"grade,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SelectStudents returns the user ids whose submission matches status.
func SelectStudents(subs []canvas.Submission, status string) []int64 {
	var ids []int64
	for i := range subs {
		s := &subs[i]
		var match bool
		switch status {
		case FilterUnsubmitted:
			match = s.IsUnsubmitted()
		case FilterMissing:
			match = s.IsMissing()
		case FilterLate:
			match = s.IsLate()
		}
		if match {
			ids = append(ids, s.UserID)
		}
	}
	return ids
}

// GradeMany grades each student in turn; a failure is recorded and the batch continues.
func GradeMany(ctx context.Context, c *canvas.Client, courseID, assignmentID int64, studentIDs []int64, in canvas.GradeInput) []GradeOutcome {
	grade := Grade(in.PostedGrade)
	out := make([]GradeOutcome, 0, len(studentIDs))
	for _, id := range studentIDs {
		if _, err := c.GradeSubmission(ctx, courseID, assignmentID, id, in); err != nil {
			out = append(out, GradeOutcome{StudentID: id, Status: "error", Error: err.Error()})
			continue
		}
		out = append(out, GradeOutcome{StudentID: id, Status: "graded", Grade: &grade})
	}
	return out
}

// AuditCourse reports future assignments that still have unsubmitted work.
func AuditCourse(ctx context.Context, c *canvas.Client, courseID int64) (string, error) {
	assignments, err := c.ListAssignments(ctx, courseID)
	if err != nil {
		return "", err
	}
	at := now()
	var future []canvas.Assignment
	for _, a := range assignments {
		if dueAfter(a.DueAt, at) {
			future = append(future, a)
		}
	}
	if len(future) == 0 {
		return "No future assignments found.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Audit for Course %d:\n", courseID)
	for _, a := range future {
		if a.ID == nil {
			continue
		}
		subs, err := c.ListSubmissions(ctx, courseID, *a.ID)
		if err != nil {
			return "", err
		}
		var missing []canvas.Submission
		for _, s := range subs {
			if s.IsUnsubmitted() {
				missing = append(missing, s)
			}
		}
		if len(missing) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\nAssignment: %s (Due: %s)\n", a.Name, *a.DueAt)
		fmt.Fprintf(&b, "  %d missing submissions:\n", len(missing))
		for _, m := range missing {
			name := fmt.Sprintf("User %d", m.UserID)
			if m.User != nil && m.User.Name != "" {
				name = m.User.Name
			}
			fmt.Fprintf(&b, "    - %s (ID: %d)\n", name, m.UserID)
		}
	}
	return b.String(), nil
}
