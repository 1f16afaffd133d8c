package tools

import (
	"context"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

type courseInput struct {
	CourseID Identifier `json:"course_id"`
}

type pageInput struct {
	CourseID Identifier `json:"course_id"`
	PageID   Identifier `json:"page_id"`
}

// CourseTools browse courses and their content.
func CourseTools() []Tool {
	return []Tool{
		define("canvas_list_courses", AreaCourses,
			"List all active courses for the current user",
			nil,
			func(ctx context.Context, c *canvas.Client, _ struct{}) (string, error) {
				courses, err := c.ListCourses(ctx)
				if err != nil {
					return "", err
				}
				return jsonText(courses)
			}),
		define("canvas_list_modules", AreaCourses,
			"List all modules in a course, with their items",
			[]Param{courseParam()},
			func(ctx context.Context, c *canvas.Client, in courseInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				modules, err := c.ListModules(ctx, id)
				if err != nil {
					return "", err
				}
				return jsonText(modules)
			}),
		define("canvas_list_pages", AreaCourses,
			"List all wiki pages in a course",
			[]Param{courseParam()},
			func(ctx context.Context, c *canvas.Client, in courseInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				pages, err := c.ListPages(ctx, id)
				if err != nil {
					return "", err
				}
				return jsonText(pages)
			}),
		define("canvas_get_page_content", AreaCourses,
			"Get the HTML body of a course page",
			[]Param{
				courseParam(),
				{Name: "page_id", Type: TypeIDOrName, Description: "The ID or URL-slug of the page", Required: true},
			},
			func(ctx context.Context, c *canvas.Client, in pageInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				page, err := c.GetPage(ctx, id, string(in.PageID))
				if err != nil {
					return "", err
				}
				if page.Body == nil || *page.Body == "" {
					return page.Title + "\n(No content)", nil
				}
				return *page.Body, nil
			}),
		define("canvas_list_files", AreaCourses,
			"List all files in a course",
			[]Param{courseParam()},
			func(ctx context.Context, c *canvas.Client, in courseInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				files, err := c.ListFiles(ctx, id)
				if err != nil {
					return "", err
				}
				return jsonText(files)
			}),
		define("canvas_list_students", AreaCourses,
			"List all students enrolled in a course",
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
				return jsonText(students)
			}),
	}
}
