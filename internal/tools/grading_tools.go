package tools

import (
	"context"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

type gradeInput struct {
	CourseID         Identifier              `json:"course_id"`
	AssignmentID     ID                      `json:"assignment_id"`
	StudentID        ID                      `json:"student_id"`
	Grade            Grade                   `json:"grade"`
	Comment          string                  `json:"comment"`
	RubricAssessment canvas.RubricAssessment `json:"rubric_assessment"`
}

// GradingTools grade submissions and audit outstanding work.
func GradingTools() []Tool {
	return []Tool{
		define("canvas_grade_submission", AreaGrading,
			"Grade a submission for a specific student",
			[]Param{
				courseParam(),
				idParam("assignment_id", "The ID of the assignment"),
				idParam("student_id", "The ID of the student"),
				{Name: "grade", Type: TypeNumberOrString, Description: "The grade to assign (points, percentage or letter)", Required: true},
				{Name: "comment", Type: TypeString, Description: "Optional comment"},
				rubricParam(),
			},
			func(ctx context.Context, c *canvas.Client, in gradeInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				sub, err := c.GradeSubmission(ctx, id, int64(in.AssignmentID), int64(in.StudentID), canvas.GradeInput{
					PostedGrade:      string(in.Grade),
					Comment:          in.Comment,
					RubricAssessment: in.RubricAssessment,
				})
				if err != nil {
					return "", err
				}
				return jsonText(sub)
			}),
		define("canvas_grade_multiple_submissions", AreaGrading,
			"Grade multiple submissions at once, either by providing student_ids or filtering by status (e.g. unsubmitted)",
			[]Param{
				courseParam(),
				idParam("assignment_id", "The ID of the assignment"),
				{Name: "grade", Type: TypeNumberOrString, Description: "The grade to assign", Required: true},
				{Name: "comment", Type: TypeString, Description: "Optional comment"},
				{Name: "student_ids", Type: TypeIDArray, Description: "List of student IDs to grade"},
				{Name: "filter_status", Type: TypeString, Description: "Filter student submissions by status", Enum: filterStatuses},
				rubricParam(),
			},
			func(ctx context.Context, c *canvas.Client, in BatchGradeRequest) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				aid := int64(in.AssignmentID)

				var students []int64
				if in.StudentIDs != nil {
					for _, s := range in.StudentIDs {
						students = append(students, int64(s))
					}
				} else {
					subs, err := c.ListSubmissions(ctx, id, aid)
					if err != nil {
						return "", err
					}
					students = SelectStudents(subs, in.FilterStatus)
				}
				if len(students) == 0 {
					return noStudentsMatched, nil
				}

				results := GradeMany(ctx, c, id, aid, students, canvas.GradeInput{
					PostedGrade:      string(in.Grade),
					Comment:          in.Comment,
					RubricAssessment: in.RubricAssessment,
				})
				return jsonText(results)
			}),
		define("canvas_audit_course", AreaGrading,
			"Audit a course for future assignments and missing submissions",
			[]Param{courseParam()},
			func(ctx context.Context, c *canvas.Client, in courseInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				return AuditCourse(ctx, c, id)
			}),
	}
}
