package tools

import (
	"context"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

type assignmentInput struct {
	CourseID     Identifier `json:"course_id"`
	AssignmentID ID         `json:"assignment_id"`
}

type submissionInput struct {
	CourseID     Identifier `json:"course_id"`
	AssignmentID ID         `json:"assignment_id"`
	StudentID    ID         `json:"student_id"`
}

type deleteCommentInput struct {
	CourseID     Identifier `json:"course_id"`
	AssignmentID ID         `json:"assignment_id"`
	StudentID    ID         `json:"student_id"`
	CommentID    ID         `json:"comment_id"`
}

type assignmentDatesInput struct {
	CourseID     Identifier `json:"course_id"`
	AssignmentID ID         `json:"assignment_id"`
	dateInput
}

type bulkDueDateInput struct {
	CourseID Identifier `json:"course_id"`
	BulkDueDateRequest
}

// AssignmentTools read assignments and submissions and change schedules.
func AssignmentTools() []Tool {
	assignmentID := idParam("assignment_id", "The ID of the assignment")
	studentID := idParam("student_id", "The ID of the student")

	return []Tool{
		define("canvas_get_assignments", AreaAssignments,
			"List all assignments for a specific course",
			[]Param{courseParam()},
			func(ctx context.Context, c *canvas.Client, in courseInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				list, err := c.ListAssignments(ctx, id)
				if err != nil {
					return "", err
				}
				return jsonText(list)
			}),
		define("canvas_get_assignment", AreaAssignments,
			"Get details for a specific assignment",
			[]Param{courseParam(), assignmentID},
			func(ctx context.Context, c *canvas.Client, in assignmentInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				a, err := c.GetAssignment(ctx, id, int64(in.AssignmentID))
				if err != nil {
					return "", err
				}
				return jsonText(a)
			}),
		define("canvas_get_submissions", AreaAssignments,
			"Get submissions for a specific assignment in a course",
			[]Param{courseParam(), assignmentID},
			func(ctx context.Context, c *canvas.Client, in assignmentInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				subs, err := c.ListSubmissions(ctx, id, int64(in.AssignmentID))
				if err != nil {
					return "", err
				}
				return jsonText(subs)
			}),
		define("canvas_get_submission", AreaAssignments,
			"Get a specific submission details, including file download URLs and text content",
			[]Param{courseParam(), assignmentID, studentID},
			func(ctx context.Context, c *canvas.Client, in submissionInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				sub, err := c.GetSubmission(ctx, id, int64(in.AssignmentID), int64(in.StudentID))
				if err != nil {
					return "", err
				}
				return jsonText(sub)
			}),
		define("canvas_get_submission_comments", AreaAssignments,
			"Get all comments for a specific submission",
			[]Param{courseParam(), assignmentID, studentID},
			func(ctx context.Context, c *canvas.Client, in submissionInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				sub, err := c.GetSubmission(ctx, id, int64(in.AssignmentID), int64(in.StudentID))
				if err != nil {
					return "", err
				}
				comments := sub.SubmissionComments
				if comments == nil {
					comments = []canvas.SubmissionComment{}
				}
				return jsonText(comments)
			}),
		define("canvas_delete_submission_comment", AreaAssignments,
			"Delete a specific submission comment",
			[]Param{courseParam(), assignmentID, studentID, idParam("comment_id", "The ID of the comment to delete")},
			func(ctx context.Context, c *canvas.Client, in deleteCommentInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				res, err := c.DeleteSubmissionComment(ctx, id, int64(in.AssignmentID), int64(in.StudentID), int64(in.CommentID))
				if err != nil {
					return "", err
				}
				return jsonText(res)
			}),
		define("canvas_update_assignment_dates", AreaAssignments,
			"Update due/unlock/lock dates for a specific assignment",
			append([]Param{courseParam(), assignmentID}, dateParams()...),
			func(ctx context.Context, c *canvas.Client, in assignmentDatesInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				a, err := c.UpdateAssignmentDates(ctx, id, int64(in.AssignmentID), in.update())
				if err != nil {
					return "", err
				}
				return jsonText(a)
			}),
		define("canvas_bulk_update_due_dates", AreaAssignments,
			"Set one due date on every assignment whose name contains all query terms. Use dry_run to preview matches without changing anything.",
			[]Param{
				courseParam(),
				{Name: "query_terms", Type: TypeStringArray, Description: "Terms that must all appear in the assignment name (case-insensitive)", Required: true},
				{Name: "due_at", Type: TypeString, Description: "New due date in ISO-8601 format", Required: true},
				{Name: "limit", Type: TypeNumber, Description: "Maximum assignments to change, 1-100 (default 20)"},
				{Name: "dry_run", Type: TypeBoolean, Description: "Report matches without updating (default false)"},
			},
			func(ctx context.Context, c *canvas.Client, in bulkDueDateInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				res, err := BulkUpdateDueDates(ctx, c, id, in.BulkDueDateRequest)
				if err != nil {
					return "", err
				}
				return jsonText(res)
			}),
	}
}
