package canvas

import (
	"context"
	"net/url"
)

// ListCourses returns the caller's active courses with their term.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	return getAllPages[Course](ctx, c, "courses", listParams(
		"include[]", "term",
		"enrollment_state", "active",
	))
}

// GetCourse fetches a single course.
func (c *Client) GetCourse(ctx context.Context, courseID int64) (*Course, error) {
	var course Course
	if err := c.getJSON(ctx, "courses/"+idString(courseID), listParams("include[]", "term"), &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListModules returns the course modules with their items.
func (c *Client) ListModules(ctx context.Context, courseID int64) ([]Module, error) {
	return getAllPages[Module](ctx, c, "courses/"+idString(courseID)+"/modules", listParams("include[]", "items"))
}

// ListPages returns the course wiki pages (without bodies).
func (c *Client) ListPages(ctx context.Context, courseID int64) ([]Page, error) {
	return getAllPages[Page](ctx, c, "courses/"+idString(courseID)+"/pages", nil)
}

// GetPage fetches one page by url slug or numeric id, including its body.
func (c *Client) GetPage(ctx context.Context, courseID int64, pageURLOrID string) (*Page, error) {
	var page Page
	path := "courses/" + idString(courseID) + "/pages/" + url.PathEscape(pageURLOrID)
	if err := c.getJSON(ctx, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListFiles returns the course files.
func (c *Client) ListFiles(ctx context.Context, courseID int64) ([]FileAttachment, error) {
	return getAllPages[FileAttachment](ctx, c, "courses/"+idString(courseID)+"/files", nil)
}
