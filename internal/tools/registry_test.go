package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

// fakeCanvas records requests and serves canned responses keyed by "METHOD path".
type fakeCanvas struct {
	mu       sync.Mutex
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
	requests []string
	bodies   map[string][]byte
}

func newFakeCanvas(t *testing.T) (*fakeCanvas, *canvas.Client) {
	t.Helper()
	f := &fakeCanvas{
		routes: make(map[string]func(w http.ResponseWriter, r *http.Request)),
		bodies: make(map[string][]byte),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/v1")
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, key)
		f.bodies[key] = body
		h, ok := f.routes[key]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[{"message":"The specified resource does not exist."}]}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := canvas.NewClient(srv.URL, "tok", nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return f, c
}

func (f *fakeCanvas) json(method, path, body string) {
	f.routes[method+" "+path] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func (f *fakeCanvas) fail(method, path string, status int, msg string) {
	f.routes[method+" "+path] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(`{"errors":[{"message":"` + msg + `"}]}`))
	}
}

func (f *fakeCanvas) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeCanvas) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestRegistry(t *testing.T, c *canvas.Client, groups ...[]Tool) *Registry {
	t.Helper()
	if len(groups) == 0 {
		groups = Catalog()
	}
	r, err := NewRegistry(c, nil, groups...)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestRegistry_CatalogIsComplete(t *testing.T) {
	_, c := newFakeCanvas(t)
	r := newTestRegistry(t, c)

	want := []string{
		"canvas_list_courses", "canvas_list_modules", "canvas_list_pages", "canvas_get_page_content",
		"canvas_list_files", "canvas_list_students",
		"canvas_get_assignments", "canvas_get_assignment", "canvas_get_submissions", "canvas_get_submission",
		"canvas_get_submission_comments", "canvas_delete_submission_comment", "canvas_update_assignment_dates",
		"canvas_bulk_update_due_dates",
		"canvas_grade_submission", "canvas_grade_multiple_submissions", "canvas_audit_course",
		"canvas_list_announcements", "canvas_list_discussions", "canvas_get_discussion_entries",
		"canvas_post_announcement", "canvas_post_discussion_reply",
		"canvas_list_quizzes", "canvas_get_quiz", "canvas_update_quiz_dates",
		"canvas_list_students_with_grades", "canvas_get_student_grades", "canvas_get_student_assignments",
		"canvas_list_assignment_due_dates",
	}
	if r.Len() != len(want) {
		t.Errorf("expected %d tools, got %d", len(want), r.Len())
	}
	for _, name := range want {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("missing tool %s", name)
		}
	}
	tools := r.Tools()
	for i := 1; i < len(tools); i++ {
		if tools[i-1].Name > tools[i].Name {
			t.Fatalf("tools not sorted: %s > %s", tools[i-1].Name, tools[i].Name)
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	_, err := NewRegistry(nil, nil, CourseTools(), CourseTools())
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	_, c := newFakeCanvas(t)
	r := newTestRegistry(t, c)

	_, err := r.Dispatch(context.Background(), "canvas_does_not_exist", nil)
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "canvas_does_not_exist") {
		t.Errorf("error should name the tool: %v", err)
	}
}

func TestDispatch_IsolatesFailures(t *testing.T) {
	f, c := newFakeCanvas(t)
	f.json("GET", "/courses", `[{"id":1,"name":"Intro"}]`)

	boom := define("boom", AreaCourses, "panics", nil, func(ctx context.Context, c *canvas.Client, _ struct{}) (string, error) {
		panic("kaboom")
	})
	r := newTestRegistry(t, c, []Tool{boom}, CourseTools())

	for i := 0; i < 2; i++ {
		res, err := r.Dispatch(context.Background(), "boom", nil)
		if err != nil {
			t.Fatalf("Dispatch(boom): %v", err)
		}
		if !res.IsError || !strings.Contains(res.Content, "kaboom") {
			t.Errorf("expected error result, got %+v", res)
		}

		res, err = r.Dispatch(context.Background(), "canvas_list_courses", nil)
		if err != nil {
			t.Fatalf("Dispatch(list): %v", err)
		}
		if res.IsError {
			t.Fatalf("list courses failed after panic: %s", res.Content)
		}
		if !strings.Contains(res.Content, `"Intro"`) {
			t.Errorf("unexpected content %s", res.Content)
		}
	}
}

func TestDispatch_ValidationNamesFields(t *testing.T) {
	f, c := newFakeCanvas(t)
	r := newTestRegistry(t, c)

	res, err := r.Dispatch(context.Background(), "canvas_get_submission", map[string]any{
		"course_id":     "",
		"assignment_id": "abc",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	for _, field := range []string{"course_id", "assignment_id", "student_id"} {
		if !strings.Contains(res.Content, field) {
			t.Errorf("error should name %s: %s", field, res.Content)
		}
	}
	if f.total() != 0 {
		t.Errorf("validation should precede network, got %d requests", f.total())
	}
}

func TestDispatch_BackendErrorEnvelope(t *testing.T) {
	f, c := newFakeCanvas(t)
	f.fail("GET", "/courses/9/assignments/4", http.StatusUnauthorized, "Invalid access token.")
	r := newTestRegistry(t, c)

	res, err := r.Dispatch(context.Background(), "canvas_get_assignment", map[string]any{
		"course_id":     float64(9),
		"assignment_id": float64(4),
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !res.IsError || !strings.HasPrefix(res.Content, "Error: ") || !strings.Contains(res.Content, "Invalid access token.") {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestDispatch_ResolvesCourseByName(t *testing.T) {
	f, c := newFakeCanvas(t)
	f.json("GET", "/courses", `[{"id":1,"name":"Intro to Middleware"},{"id":2,"name":"Databases"}]`)
	f.json("GET", "/courses/2/quizzes", `[{"id":7,"title":"Normal forms","due_at":null,"unlock_at":null,"lock_at":null,"points_possible":5}]`)
	r := newTestRegistry(t, c)

	res, err := r.Dispatch(context.Background(), "canvas_list_quizzes", map[string]any{"course_id": "databases"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Content)
	}
	var quizzes []canvas.Quiz
	if err := json.Unmarshal([]byte(res.Content), &quizzes); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if len(quizzes) != 1 || quizzes[0].Title != "Normal forms" {
		t.Errorf("unexpected quizzes %+v", quizzes)
	}
}

func TestDispatch_CourseNotFound(t *testing.T) {
	f, c := newFakeCanvas(t)
	f.json("GET", "/courses", `[{"id":1,"name":"Intro"}]`)
	r := newTestRegistry(t, c)

	res, _ := r.Dispatch(context.Background(), "canvas_list_modules", map[string]any{"course_id": "astronomy"})
	if !res.IsError || !strings.Contains(res.Content, `"astronomy"`) {
		t.Errorf("expected not found naming input, got %+v", res)
	}
}

func TestDispatch_PageContentFallback(t *testing.T) {
	f, c := newFakeCanvas(t)
	f.json("GET", "/courses/3/pages/syllabus", `{"url":"syllabus","title":"Syllabus","body":""}`)
	r := newTestRegistry(t, c)

	res, _ := r.Dispatch(context.Background(), "canvas_get_page_content", map[string]any{"course_id": float64(3), "page_id": "syllabus"})
	if res.Content != "Syllabus\n(No content)" {
		t.Errorf("unexpected content %q", res.Content)
	}
}

func TestDispatch_ReadsAreIdempotent(t *testing.T) {
	f, c := newFakeCanvas(t)
	f.json("GET", "/courses", `[{"id":1,"name":"Intro to Middleware","course_code":"MW101"}]`)
	f.json("GET", "/courses/1/assignments/7", `{"id":7,"name":"Lab","due_at":null,"overrides":[{"id":3}],"submission_types":["online_upload"],"allowed_extensions":["pdf"],"rubric_settings":{"id":1,"title":"R"}}`)
	f.json("GET", "/courses/1/assignments/7/submissions/9", `{"id":1,"user_id":9,"assignment_id":7,"workflow_state":"submitted","url":"https://example.com/work","submission_type":"online_url","graded_at":null,"seconds_late":0,"submission_history":[{"attempt":1}]}`)
	f.json("GET", "/courses/1/quizzes", `[{"id":4,"title":"Q","quiz_type":"assignment","due_at":null,"unlock_at":null,"lock_at":null,"points_possible":5}]`)
	f.routes["GET /courses/1/assignments/8"] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":{"unlock_at":[{"message":"u"}],"due_at":[{"message":"d"}],"lock_at":[{"message":"l"}],"points_possible":[{"message":"p"}]}}`))
	}
	r := newTestRegistry(t, c)

	tests := []struct {
		tool string
		args map[string]any
	}{
		{"canvas_list_courses", map[string]any{}},
		{"canvas_get_assignment", map[string]any{"course_id": float64(1), "assignment_id": float64(7)}},
		{"canvas_get_assignment", map[string]any{"course_id": "middleware", "assignment_id": "7"}},
		{"canvas_get_submission", map[string]any{"course_id": float64(1), "assignment_id": float64(7), "student_id": float64(9)}},
		{"canvas_list_quizzes", map[string]any{"course_id": "MW101"}},
		{"canvas_get_assignment", map[string]any{"course_id": float64(1), "assignment_id": float64(8)}},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			first, err := r.Dispatch(context.Background(), tt.tool, tt.args)
			if err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			for i := 0; i < 20; i++ {
				again, err := r.Dispatch(context.Background(), tt.tool, tt.args)
				if err != nil {
					t.Fatalf("Dispatch: %v", err)
				}
				if again != first {
					t.Fatalf("call %d differs:\n%s\n---\n%s", i+2, first.Content, again.Content)
				}
			}
		})
	}

	res, _ := r.Dispatch(context.Background(), "canvas_get_assignment", map[string]any{"course_id": float64(1), "assignment_id": float64(8)})
	if !strings.Contains(res.Content, "due_at: d; lock_at: l; points_possible: p; unlock_at: u") {
		t.Errorf("field errors should be ordered by field name: %s", res.Content)
	}
	res, _ = r.Dispatch(context.Background(), "canvas_get_submission", map[string]any{"course_id": float64(1), "assignment_id": float64(7), "student_id": float64(9)})
	for _, key := range []string{`"submission_history"`, `"url"`, `"submission_type"`, `"graded_at"`} {
		if !strings.Contains(res.Content, key) {
			t.Errorf("submission result lost %s: %s", key, res.Content)
		}
	}
}
