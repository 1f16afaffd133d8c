package canvas

import (
	"context"
	"net/http"
)

// ListAssignments returns every assignment in the course.
func (c *Client) ListAssignments(ctx context.Context, courseID int64) ([]Assignment, error) {
	return getAllPages[Assignment](ctx, c, "courses/"+idString(courseID)+"/assignments", nil)
}

// GetAssignment fetches one assignment with submission, rubric settings and overrides.
func (c *Client) GetAssignment(ctx context.Context, courseID, assignmentID int64) (*Assignment, error) {
	var a Assignment
	path := "courses/" + idString(courseID) + "/assignments/" + idString(assignmentID)
	params := listParams(
		"include[]", "submission",
		"include[]", "rubric_settings",
		"include[]", "overrides",
	)
	if err := c.getJSON(ctx, path, params, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAssignmentDates applies a partial date update. An update with no
// fields is rejected before any request is made.
func (c *Client) UpdateAssignmentDates(ctx context.Context, courseID, assignmentID int64, dates DateUpdate) (*Assignment, error) {
	if dates.IsEmpty() {
		return nil, ErrNoDateFields
	}
	var a Assignment
	path := "courses/" + idString(courseID) + "/assignments/" + idString(assignmentID)
	body := map[string]any{"assignment": dates}
	if err := c.sendJSON(ctx, http.MethodPut, path, body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListQuizzes returns every classic quiz in the course.
func (c *Client) ListQuizzes(ctx context.Context, courseID int64) ([]Quiz, error) {
	return getAllPages[Quiz](ctx, c, "courses/"+idString(courseID)+"/quizzes", nil)
}

// GetQuiz fetches one quiz.
func (c *Client) GetQuiz(ctx context.Context, courseID, quizID int64) (*Quiz, error) {
	var q Quiz
	if err := c.getJSON(ctx, "courses/"+idString(courseID)+"/quizzes/"+idString(quizID), nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuizDates applies a partial date update to a quiz.
func (c *Client) UpdateQuizDates(ctx context.Context, courseID, quizID int64, dates DateUpdate) (*Quiz, error) {
	if dates.IsEmpty() {
		return nil, ErrNoDateFields
	}
	var q Quiz
	path := "courses/" + idString(courseID) + "/quizzes/" + idString(quizID)
	body := map[string]any{"quiz": dates}
	if err := c.sendJSON(ctx, http.MethodPut, path, body, &q); err != nil {
		return nil, err
	}
	return &q, nil
}
