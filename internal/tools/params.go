package tools

import (
	"context"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
	"github.com/bobmcallan/canvas-mcp/internal/resolver"
)

func courseParam() Param {
	return Param{Name: "course_id", Type: TypeIDOrName, Description: "The ID or name of the course", Required: true}
}

func studentParam() Param {
	return Param{Name: "student_id", Type: TypeIDOrName, Description: "Student ID or student name", Required: true}
}

func idParam(name, description string) Param {
	return Param{Name: name, Type: TypeID, Description: description, Required: true}
}

func dateParams() []Param {
	return []Param{
		{Name: "due_at", Type: TypeNullableString, Description: "New due date in ISO-8601 format (e.g., 2026-02-15T23:59:00Z). Use null to clear."},
		{Name: "unlock_at", Type: TypeNullableString, Description: "New unlock date in ISO-8601 format. Use null to clear."},
		{Name: "lock_at", Type: TypeNullableString, Description: "New lock date in ISO-8601 format. Use null to clear."},
	}
}

func rubricParam() Param {
	return Param{Name: "rubric_assessment", Type: TypeObject, Description: "Rubric assessment data. Map of criterion ID to {points, rating_id, comments}."}
}

func resolveCourse(ctx context.Context, c *canvas.Client, ident Identifier) (int64, error) {
	return resolver.CourseID(ctx, c, string(ident))
}

func resolveStudent(ctx context.Context, c *canvas.Client, courseID int64, ident Identifier) (int64, error) {
	return resolver.StudentID(ctx, c, courseID, string(ident))
}

// dateInput is embedded by inputs that carry a tri-state date update.
type dateInput struct {
	DueAt    canvas.DateField `json:"due_at"`
	UnlockAt canvas.DateField `json:"unlock_at"`
	LockAt   canvas.DateField `json:"lock_at"`
}

func (d dateInput) update() canvas.DateUpdate {
	return canvas.DateUpdate{DueAt: d.DueAt, UnlockAt: d.UnlockAt, LockAt: d.LockAt}
}

func (d *dateInput) Validate() error {
	if d.update().IsEmpty() {
		return &ValidationError{
			Message: NoDateFieldsMessage,
			Fields: []FieldError{
				{Field: "due_at", Problem: "is absent"},
				{Field: "unlock_at", Problem: "is absent"},
				{Field: "lock_at", Problem: "is absent"},
			},
		}
	}
	return nil
}
