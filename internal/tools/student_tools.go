package tools

import (
	"context"
	"encoding/json"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

type studentInput struct {
	CourseID  Identifier `json:"course_id"`
	StudentID Identifier `json:"student_id"`
}

type dueDatesInput struct {
	CourseID     Identifier `json:"course_id"`
	OnlyUpcoming bool       `json:"only_upcoming"`
}

// StudentGrade is the grade summary of one student.
type StudentGrade struct {
	StudentID    int64    `json:"student_id"`
	StudentName  string   `json:"student_name"`
	Email        *string  `json:"email"`
	CurrentGrade *string  `json:"current_grade"`
	FinalGrade   *string  `json:"final_grade"`
	CurrentScore *float64 `json:"current_score"`
	FinalScore   *float64 `json:"final_score"`
}

// StudentGradeOf reads grades from the student's first enrollment.
func StudentGradeOf(u canvas.User) StudentGrade {
	g := StudentGrade{StudentID: u.ID, StudentName: u.Name, Email: u.Email}
	if len(u.Enrollments) > 0 && u.Enrollments[0].Grades != nil {
		gr := u.Enrollments[0].Grades
		g.CurrentGrade = gr.CurrentGrade
		g.FinalGrade = gr.FinalGrade
		g.CurrentScore = gr.CurrentScore
		g.FinalScore = gr.FinalScore
	}
	return g
}

// StudentAssignment is one row of a student's assignment status.
type StudentAssignment struct {
	AssignmentID   int64         `json:"assignment_id"`
	AssignmentName *string       `json:"assignment_name"`
	DueAt          *string       `json:"due_at"`
	UnlockAt       *string       `json:"unlock_at"`
	LockAt         *string       `json:"lock_at"`
	SubmittedAt    *string       `json:"submitted_at"`
	Late           bool          `json:"late"`
	Missing        bool          `json:"missing"`
	WorkflowState  WorkflowValue `json:"workflow_state"`
	Grade          *string       `json:"grade"`
	Score          *float64      `json:"score"`
}

// WorkflowValue renders an empty workflow state as null.
type WorkflowValue canvas.WorkflowState

func (w WorkflowValue) MarshalJSON() ([]byte, error) {
	if w == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(w))
}

func studentAssignmentOf(s canvas.Submission) StudentAssignment {
	row := StudentAssignment{
		AssignmentID:  s.AssignmentID,
		SubmittedAt:   s.SubmittedAt,
		Late:          s.IsLate(),
		Missing:       s.IsMissing(),
		WorkflowState: WorkflowValue(s.WorkflowState),
		Grade:         s.Grade,
		Score:         s.Score,
	}
	if a := s.Assignment; a != nil {
		name := a.Name
		row.AssignmentName = &name
		row.DueAt = a.DueAt
		row.UnlockAt = a.UnlockAt
		row.LockAt = a.LockAt
	}
	return row
}

// DueDateRow is one row of the course due-date listing.
type DueDateRow struct {
	AssignmentID   *int64   `json:"assignment_id"`
	AssignmentName string   `json:"assignment_name"`
	DueAt          *string  `json:"due_at"`
	UnlockAt       *string  `json:"unlock_at"`
	LockAt         *string  `json:"lock_at"`
	PointsPossible *float64 `json:"points_possible"`
	Published      *bool    `json:"published"`
}

// StudentTools report on students, their grades and their work.
func StudentTools() []Tool {
	return []Tool{
		define("canvas_list_students_with_grades", AreaStudents,
			"List students in a course with current and final grades",
			[]Param{courseParam()},
			func(ctx context.Context, c *canvas.Client, in courseInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				students, err := c.ListStudents(ctx, id)
				if err != nil {
					return "", err
				}
				rows := make([]StudentGrade, 0, len(students))
				for _, s := range students {
					rows = append(rows, StudentGradeOf(s))
				}
				return jsonText(rows)
			}),
		define("canvas_get_student_grades", AreaStudents,
			"Get grade summary for one student in a course",
			[]Param{courseParam(), studentParam()},
			func(ctx context.Context, c *canvas.Client, in studentInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				sid, err := resolveStudent(ctx, c, id, in.StudentID)
				if err != nil {
					return "", err
				}
				u, err := c.GetStudent(ctx, id, sid)
				if err != nil {
					return "", err
				}
				return jsonText(StudentGradeOf(*u))
			}),
		define("canvas_get_student_assignments", AreaStudents,
			"Get all assignments for one student with due dates and submission status",
			[]Param{courseParam(), studentParam()},
			func(ctx context.Context, c *canvas.Client, in studentInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				sid, err := resolveStudent(ctx, c, id, in.StudentID)
				if err != nil {
					return "", err
				}
				subs, err := c.ListStudentSubmissions(ctx, id, sid)
				if err != nil {
					return "", err
				}
				rows := make([]StudentAssignment, 0, len(subs))
				for _, s := range subs {
					rows = append(rows, studentAssignmentOf(s))
				}
				return jsonText(rows)
			}),
		define("canvas_list_assignment_due_dates", AreaStudents,
			"List assignment due dates in a course (optionally only upcoming)",
			[]Param{
				courseParam(),
				{Name: "only_upcoming", Type: TypeBoolean, Description: "If true, return only assignments with due_at >= now"},
			},
			func(ctx context.Context, c *canvas.Client, in dueDatesInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				list, err := c.ListAssignments(ctx, id)
				if err != nil {
					return "", err
				}
				list = FilterAssignments(list, AssignmentFilter{UpcomingOnly: in.OnlyUpcoming})
				rows := make([]DueDateRow, 0, len(list))
				for _, a := range list {
					rows = append(rows, DueDateRow{
						AssignmentID:   a.ID,
						AssignmentName: a.Name,
						DueAt:          a.DueAt,
						UnlockAt:       a.UnlockAt,
						LockAt:         a.LockAt,
						PointsPossible: a.PointsPossible,
						Published:      a.Published,
					})
				}
				return jsonText(rows)
			}),
	}
}
