package canvas

import (
	"context"
	"net/http"
)

// GradeInput is the body of a grading request.
type GradeInput struct {
	PostedGrade      string
	Comment          string
	RubricAssessment RubricAssessment
}

// ListSubmissions returns every submission for an assignment, with the user embedded.
func (c *Client) ListSubmissions(ctx context.Context, courseID, assignmentID int64) ([]Submission, error) {
	path := "courses/" + idString(courseID) + "/assignments/" + idString(assignmentID) + "/submissions"
	return getAllPages[Submission](ctx, c, path, listParams("include[]", "user"))
}

// GetSubmission fetches one student's submission with history, comments and rubric assessment.
func (c *Client) GetSubmission(ctx context.Context, courseID, assignmentID, userID int64) (*Submission, error) {
	var s Submission
	path := "courses/" + idString(courseID) + "/assignments/" + idString(assignmentID) + "/submissions/" + idString(userID)
	params := listParams(
		"include[]", "submission_history",
		"include[]", "submission_comments",
		"include[]", "rubric_assessment",
		"include[]", "visibility",
		"include[]", "user",
	)
	if err := c.getJSON(ctx, path, params, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GradeSubmission posts a grade, optional comment and optional rubric assessment.
func (c *Client) GradeSubmission(ctx context.Context, courseID, assignmentID, userID int64, in GradeInput) (*Submission, error) {
	body := map[string]any{
		"submission": map[string]any{"posted_grade": in.PostedGrade},
	}
	if in.Comment != "" {
		body["comment"] = map[string]any{"text_comment": in.Comment}
	}
	if len(in.RubricAssessment) > 0 {
		body["rubric_assessment"] = in.RubricAssessment
	}

	var s Submission
	path := "courses/" + idString(courseID) + "/assignments/" + idString(assignmentID) + "/submissions/" + idString(userID)
	if err := c.sendJSON(ctx, http.MethodPut, path, body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AddSubmissionComment leaves a text comment without changing the grade.
func (c *Client) AddSubmissionComment(ctx context.Context, courseID, assignmentID, userID int64, text string) (*Submission, error) {
	body := map[string]any{"comment": map[string]any{"text_comment": text}}
	var s Submission
	path := "courses/" + idString(courseID) + "/assignments/" + idString(assignmentID) + "/submissions/" + idString(userID)
	if err := c.sendJSON(ctx, http.MethodPut, path, body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSubmissionComment removes a comment from a submission.
func (c *Client) DeleteSubmissionComment(ctx context.Context, courseID, assignmentID, userID, commentID int64) (*CommentDeletion, error) {
	path := "courses/" + idString(courseID) + "/assignments/" + idString(assignmentID) +
		"/submissions/" + idString(userID) + "/comments/" + idString(commentID)
	if err := c.sendJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return nil, err
	}
	return &CommentDeletion{Deleted: true, CommentID: commentID}, nil
}

// ListStudentSubmissions returns all of one student's submissions in a course,
// each with its assignment embedded.
func (c *Client) ListStudentSubmissions(ctx context.Context, courseID, studentID int64) ([]Submission, error) {
	path := "courses/" + idString(courseID) + "/students/submissions"
	return getAllPages[Submission](ctx, c, path, listParams(
		"student_ids[]", idString(studentID),
		"include[]", "assignment",
	))
}
