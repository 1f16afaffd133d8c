package tools

import (
	"context"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

type quizInput struct {
	CourseID Identifier `json:"course_id"`
	QuizID   ID         `json:"quiz_id"`
}

type quizDatesInput struct {
	CourseID Identifier `json:"course_id"`
	QuizID   ID         `json:"quiz_id"`
	dateInput
}

// QuizTools read classic quizzes and change their schedule.
func QuizTools() []Tool {
	quizID := idParam("quiz_id", "The quiz ID")

	return []Tool{
		define("canvas_list_quizzes", AreaQuizzes,
			"List quizzes in a course",
			[]Param{courseParam()},
			func(ctx context.Context, c *canvas.Client, in courseInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				quizzes, err := c.ListQuizzes(ctx, id)
				if err != nil {
					return "", err
				}
				return jsonText(quizzes)
			}),
		define("canvas_get_quiz", AreaQuizzes,
			"Get details for one quiz",
			[]Param{courseParam(), quizID},
			func(ctx context.Context, c *canvas.Client, in quizInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				q, err := c.GetQuiz(ctx, id, int64(in.QuizID))
				if err != nil {
					return "", err
				}
				return jsonText(q)
			}),
		define("canvas_update_quiz_dates", AreaQuizzes,
			"Update due/unlock/lock dates for a quiz",
			append([]Param{courseParam(), quizID}, dateParams()...),
			func(ctx context.Context, c *canvas.Client, in quizDatesInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				q, err := c.UpdateQuizDates(ctx, id, int64(in.QuizID), in.update())
				if err != nil {
					return "", err
				}
				return jsonText(q)
			}),
	}
}
