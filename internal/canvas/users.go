package canvas

import "context"

// ListStudents returns the students enrolled in a course with email and enrollments.
func (c *Client) ListStudents(ctx context.Context, courseID int64) ([]User, error) {
	return getAllPages[User](ctx, c, "courses/"+idString(courseID)+"/users", listParams(
		"enrollment_type[]", "student",
		"include[]", "email",
		"include[]", "enrollments",
	))
}

// GetStudent fetches one user in the context of a course.
func (c *Client) GetStudent(ctx context.Context, courseID, userID int64) (*User, error) {
	var u User
	path := "courses/" + idString(courseID) + "/users/" + idString(userID)
	params := listParams(
		"include[]", "email",
		"include[]", "enrollments",
	)
	if err := c.getJSON(ctx, path, params, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// StudentEnrollment returns the user's first enrollment in the course, or nil.
func StudentEnrollment(u *User, courseID int64) *Enrollment {
	for i := range u.Enrollments {
		e := &u.Enrollments[i]
		if e.CourseID == nil || *e.CourseID == courseID {
			return e
		}
	}
	return nil
}
