// Package resolver turns user-supplied identifiers (numeric ids or free-text
// names) into Canvas numeric ids.
package resolver

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

// CourseLister is the slice of the Canvas client needed to resolve courses.
type CourseLister interface {
	ListCourses(ctx context.Context) ([]canvas.Course, error)
}

// StudentLister is the slice of the Canvas client needed to resolve students.
type StudentLister interface {
	ListStudents(ctx context.Context, courseID int64) ([]canvas.User, error)
}

// NotFoundError reports that a name matched no candidate.
type NotFoundError struct {
	Kind  string // "Course" or "Student"
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found matching: %q. Please provide a valid %s ID or a more specific name.", e.Kind, e.Query, e.Kind)
}

// ParseID returns the numeric id when s is entirely numeric.
func ParseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}

// CourseID resolves a course identifier. Numeric input is returned without a
// network call; otherwise the first course (in list order) whose name,
// original name or course code contains the lowered input wins.
func CourseID(ctx context.Context, courses CourseLister, ident string) (int64, error) {
	if id, ok := ParseID(ident); ok {
		return id, nil
	}

	list, err := courses.ListCourses(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list courses: %w", err)
	}
	term := strings.ToLower(strings.TrimSpace(ident))
	for _, c := range list {
		if contains(c.Name, term) || containsPtr(c.OriginalName, term) || containsPtr(c.CourseCode, term) {
			return c.ID, nil
		}
	}
	return 0, &NotFoundError{Kind: "Course", Query: ident}
}

// StudentID resolves a student identifier within a course, matching on name,
// sortable name, email and login id in that order of precedence per student.
func StudentID(ctx context.Context, students StudentLister, courseID int64, ident string) (int64, error) {
	if id, ok := ParseID(ident); ok {
		return id, nil
	}

	list, err := students.ListStudents(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to list students: %w", err)
	}
	term := strings.ToLower(strings.TrimSpace(ident))
	for _, u := range list {
		if contains(u.Name, term) || containsPtr(u.SortableName, term) ||
			containsPtr(u.Email, term) || containsPtr(u.LoginID, term) {
			return u.ID, nil
		}
	}
	return 0, &NotFoundError{Kind: "Student", Query: ident}
}

func contains(field, term string) bool {
	return strings.Contains(strings.ToLower(field), term)
}

func containsPtr(field *string, term string) bool {
	return field != nil && contains(*field, term)
}
