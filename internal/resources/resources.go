// Package resources serves read-only canvas:// URIs.
package resources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
	"github.com/bobmcallan/canvas-mcp/internal/common"
)

// Scheme is the URI scheme of every resource.
const Scheme = "canvas"

const (
	rootCourses = "courses"
	viewReadme  = "readme"
	viewPages   = "pages"
)

var (
	// ErrInvalidScheme is returned for URIs outside canvas://.
	ErrInvalidScheme = errors.New("invalid protocol")
	// ErrUnknownResource is returned when the root segment is not recognised.
	ErrUnknownResource = errors.New("unknown resource type")
)

// UnsupportedError names a sub-view that has no handler.
type UnsupportedError struct {
	View string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("resource type %s not supported", e.View)
}

// Message renders err the way resource clients expect to read it.
func Message(err error) string {
	var unsupported *UnsupportedError
	switch {
	case errors.Is(err, ErrInvalidScheme):
		return "Invalid protocol"
	case errors.Is(err, ErrUnknownResource):
		return "Unknown resource type"
	case errors.As(err, &unsupported):
		return fmt.Sprintf("Resource type %s not supported", unsupported.View)
	}
	return err.Error()
}

// Template describes a URI family advertised to clients.
type Template struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// Templates lists the readable URI families.
func Templates() []Template {
	return []Template{
		{
			URI:         "canvas://courses/{course_id}/readme",
			Name:        "Course Readme/Summary",
			Description: "A summary of the course structure",
			MIMEType:    "text/markdown",
		},
		{
			URI:         "canvas://courses/{course_id}/pages/{page_id}",
			Name:        "Course Page",
			Description: "The HTML body of a course wiki page",
			MIMEType:    "text/html",
		},
	}
}

// URI is a parsed canvas:// address: courses/{CourseID}/{View}[/{ItemID}].
type URI struct {
	CourseID int64
	View     string
	ItemID   string
}

// ParseURI splits a canvas:// URI into its grammar parts. The authority is
// treated as the first path segment, so canvas://courses/1/readme and
// canvas:///courses/1/readme are equivalent.
func ParseURI(raw string) (URI, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return URI{}, fmt.Errorf("invalid resource uri %q: %w", raw, err)
	}
	if u.Scheme != Scheme {
		return URI{}, ErrInvalidScheme
	}

	var segments []string
	for _, s := range strings.Split(u.Host+"/"+u.EscapedPath(), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 || segments[0] != rootCourses {
		return URI{}, ErrUnknownResource
	}
	if len(segments) < 3 {
		return URI{}, fmt.Errorf("resource uri %q is missing a course id or view", raw)
	}
	courseID, err := strconv.ParseInt(segments[1], 10, 64)
	if err != nil {
		return URI{}, fmt.Errorf("resource uri %q has non-numeric course id %q", raw, segments[1])
	}

	out := URI{CourseID: courseID, View: segments[2]}
	if len(segments) > 3 {
		item, err := url.PathUnescape(segments[3])
		if err != nil {
			return URI{}, fmt.Errorf("resource uri %q has a malformed item id: %w", raw, err)
		}
		out.ItemID = item
	}
	return out, nil
}

// Content is one rendered resource.
type Content struct {
	URI      string
	MIMEType string
	Text     string
}

// Reader resolves resource URIs against Canvas. Nothing is cached.
type Reader struct {
	client *canvas.Client
	logger *common.Logger
}

// NewReader creates a Reader.
func NewReader(client *canvas.Client, logger *common.Logger) *Reader {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Reader{client: client, logger: logger}
}

// Read fetches and renders the resource at raw.
func (r *Reader) Read(ctx context.Context, raw string) (Content, error) {
	uri, err := ParseURI(raw)
	if err != nil {
		return Content{}, err
	}
	r.logger.Debug().Str("uri", raw).Str("view", uri.View).Msg("reading resource")

	switch uri.View {
	case viewReadme:
		text, err := r.readme(ctx, uri.CourseID)
		if err != nil {
			return Content{}, err
		}
		return Content{URI: raw, MIMEType: "text/markdown", Text: text}, nil
	case viewPages:
		if uri.ItemID == "" {
			return Content{}, fmt.Errorf("resource uri %q is missing a page id", raw)
		}
		page, err := r.client.GetPage(ctx, uri.CourseID, uri.ItemID)
		if err != nil {
			return Content{}, err
		}
		body := ""
		if page.Body != nil {
			body = *page.Body
		}
		return Content{URI: raw, MIMEType: "text/html", Text: body}, nil
	default:
		return Content{}, &UnsupportedError{View: uri.View}
	}
}

// readme renders a markdown digest of the course modules and assignments.
func (r *Reader) readme(ctx context.Context, courseID int64) (string, error) {
	modules, err := r.client.ListModules(ctx, courseID)
	if err != nil {
		return "", err
	}
	assignments, err := r.client.ListAssignments(ctx, courseID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Course %d Summary\n\n## Modules\n", courseID)
	for i, m := range modules {
		if i > 0 {
			b.WriteString("\n")
		}
		count := len(m.Items)
		if m.ItemsCount != nil {
			count = *m.ItemsCount
		}
		fmt.Fprintf(&b, "- %s (%d items)", m.Name, count)
	}
	b.WriteString("\n\n## Assignments\n")
	for i, a := range assignments {
		if i > 0 {
			b.WriteString("\n")
		}
		due := "none"
		if a.DueAt != nil {
			due = *a.DueAt
		}
		fmt.Fprintf(&b, "- %s (Due: %s)", a.Name, due)
	}
	return b.String(), nil
}
