package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/resolver"
	"github.com/bobmcallan/canvas-mcp/internal/tools"
)

// fakeCanvas is a canned Canvas backend that records every request.
type fakeCanvas struct {
	mu       sync.Mutex
	routes   map[string]string // "METHOD path" -> JSON body
	statuses map[string]int
	calls    []string
	bodies   map[string]string
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{routes: map[string]string{}, statuses: map[string]int{}, bodies: map[string]string{}}
}

func (f *fakeCanvas) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.bodies[key] = string(body)
	status, hasStatus := f.statuses[key]
	resp, hasRoute := f.routes[key]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case hasStatus:
		w.WriteHeader(status)
		w.Write([]byte(`{"errors":[{"message":"canned failure"}]}`))
	case hasRoute:
		w.Write([]byte(resp))
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"message":"The specified resource does not exist."}]}`))
	}
}

func (f *fakeCanvas) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, method+" ") {
			n++
		}
	}
	return n
}

const coursesJSON = `[{"id":1,"name":"Intro to Middleware","course_code":"MW101"},{"id":2,"name":"Databases"}]`

const assignmentsJSON = `[
	{"id":10,"name":"Essay 1","due_at":"2000-01-01T00:00:00Z","points_possible":10,"description":"long text","submission_types":["online_upload"],"allowed_extensions":["pdf"]},
	{"id":11,"name":"Essay 2","due_at":"2999-01-01T00:00:00Z","points_possible":10,"description":"long text"},
	{"id":12,"name":"Lab Report","due_at":null,"points_possible":5,"description":"long text"}
]`

// newTestMux wires the facade handlers against a fake backend.
func newTestMux(t *testing.T, fake *fakeCanvas) *http.ServeMux {
	t.Helper()
	backend := httptest.NewServer(fake)
	t.Cleanup(backend.Close)

	logger := common.NewSilentLogger()
	client, err := canvas.NewClient(backend.URL, "tok", logger)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	reg, err := tools.NewRegistry(client, logger, tools.Catalog()...)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	h := NewCanvasHandler(client, logger)
	th := NewToolsHandler(reg, logger)
	mux := http.NewServeMux()
	mux.Handle("/health", NewHealthHandler(logger))
	mux.Handle("/privacy", NewPrivacyHandler(""))
	mux.Handle("/openapi.json", NewOpenAPIHandler(""))
	mux.HandleFunc("GET /courses", h.ListCourses)
	mux.HandleFunc("GET /courses/{courseId}/assignments", h.ListAssignments)
	mux.HandleFunc("GET /courses/{courseId}/assignments/{assignmentId}", h.GetAssignment)
	mux.HandleFunc("PATCH /courses/{courseId}/assignments/{assignmentId}/dates", h.UpdateAssignmentDates)
	mux.HandleFunc("PATCH /courses/{courseId}/assignments/bulk-due-date", h.BulkUpdateDueDates)
	mux.HandleFunc("GET /courses/{courseId}/quizzes", h.ListQuizzes)
	mux.HandleFunc("GET /courses/{courseId}/quizzes/{quizId}", h.GetQuiz)
	mux.HandleFunc("PATCH /courses/{courseId}/quizzes/{quizId}/dates", h.UpdateQuizDates)
	mux.HandleFunc("GET /tools", th.List)
	mux.HandleFunc("POST /tools/{name}", th.Call)
	return mux
}

func do(t *testing.T, mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
}

// --- Static routes ---

func TestHealthHandler_ReturnsOK(t *testing.T) {
	w := do(t, newTestMux(t, newFakeCanvas()), "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body map[string]bool
	decodeJSON(t, w, &body)
	if !body["ok"] {
		t.Errorf("expected ok=true, got %v", body)
	}
}

func TestHealthHandler_RejectsNonGET(t *testing.T) {
	handler := NewHealthHandler(nil)
	req := httptest.NewRequest("POST", "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestPrivacyHandler(t *testing.T) {
	w := do(t, newTestMux(t, newFakeCanvas()), "GET", "/privacy", "")
	var body privacyPolicy
	decodeJSON(t, w, &body)
	if body.Service != "Canvas MCP HTTP API" || body.EffectiveDate != "2026-02-12" || len(body.Summary) != 3 {
		t.Errorf("unexpected privacy body %+v", body)
	}
	if !strings.Contains(body.Contact, "maintainer contact") {
		t.Errorf("expected placeholder contact, got %q", body.Contact)
	}
}

func TestVersionHandler_ReturnsJSON(t *testing.T) {
	handler := NewVersionHandler(nil)
	req := httptest.NewRequest("GET", "/version", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
	var body map[string]string
	decodeJSON(t, w, &body)
	for _, key := range []string{"version", "build", "git_commit"} {
		if _, ok := body[key]; !ok {
			t.Errorf("expected %s field in response", key)
		}
	}
}

func TestOpenAPIHandler_ListsFacadeRoutes(t *testing.T) {
	w := do(t, newTestMux(t, newFakeCanvas()), "GET", "/openapi.json", "")
	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
		Servers []any                     `json:"servers"`
	}
	decodeJSON(t, w, &doc)
	if doc.OpenAPI != "3.1.0" {
		t.Errorf("unexpected openapi version %s", doc.OpenAPI)
	}
	for path, method := range map[string]string{
		"/courses/{courseId}/assignments":                      "get",
		"/courses/{courseId}/assignments/{assignmentId}/dates": "patch",
		"/courses/{courseId}/assignments/bulk-due-date":        "patch",
		"/courses/{courseId}/quizzes/{quizId}/dates":           "patch",
		"/tools/{name}":                                        "post",
	} {
		if _, ok := doc.Paths[path][method]; !ok {
			t.Errorf("missing %s %s", method, path)
		}
	}
	if doc.Servers != nil {
		t.Errorf("servers should be omitted without a public URL: %v", doc.Servers)
	}
}

// --- Assignments ---

func TestListAssignments_CompactByDefault(t *testing.T) {
	fake := newFakeCanvas()
	fake.routes["GET /api/v1/courses/1/assignments"] = assignmentsJSON
	w := do(t, newTestMux(t, fake), "GET", "/courses/1/assignments", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []map[string]any
	decodeJSON(t, w, &list)
	if len(list) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(list))
	}
	if _, ok := list[0]["description"]; ok {
		t.Error("compact projection should drop description")
	}
	if v, ok := list[2]["due_at"]; !ok || v != nil {
		t.Errorf("due_at should be present as null, got %v", list[2])
	}
}

func TestListAssignments_FullAndFilters(t *testing.T) {
	fake := newFakeCanvas()
	fake.routes["GET /api/v1/courses/1/assignments"] = assignmentsJSON
	mux := newTestMux(t, fake)

	tests := []struct {
		name  string
		query string
		want  []float64
	}{
		{"search is case-insensitive and trimmed", "?search=%20ESSAY%20", []float64{10, 11}},
		{"upcoming drops past and undated", "?upcomingOnly=true", []float64{11}},
		{"limit below range clamps to 1", "?limit=0", []float64{10}},
		{"garbage limit falls back to default", "?limit=lots", []float64{10, 11, 12}},
		{"leading digits are honoured", "?limit=2abc", []float64{10, 11}},
		{"full returns whole objects", "?full=true&limit=1", []float64{10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, mux, "GET", "/courses/1/assignments"+tt.query, "")
			var list []map[string]any
			decodeJSON(t, w, &list)
			if len(list) != len(tt.want) {
				t.Fatalf("expected %d items, got %d", len(tt.want), len(list))
			}
			for i, id := range tt.want {
				if list[i]["id"] != id {
					t.Errorf("item %d: expected id %v, got %v", i, id, list[i]["id"])
				}
			}
			if strings.Contains(tt.query, "full=true") {
				if list[0]["description"] != "long text" {
					t.Errorf("full=true should keep description: %v", list[0])
				}
				if _, ok := list[0]["allowed_extensions"]; !ok {
					t.Errorf("full=true should keep unmodelled fields: %v", list[0])
				}
			}
		})
	}
}

func TestParseLimit(t *testing.T) {
	for raw, want := range map[string]int{"": 50, "7": 7, "500": 200, "-3": 1, " 12 ": 12, "x": 50} {
		if got := parseLimit(raw); got != want {
			t.Errorf("parseLimit(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestCourseIDByName(t *testing.T) {
	fake := newFakeCanvas()
	fake.routes["GET /api/v1/courses"] = coursesJSON
	fake.routes["GET /api/v1/courses/2/assignments/5"] = `{"id":5,"name":"Schema design"}`
	w := do(t, newTestMux(t, fake), "GET", "/courses/databases/assignments/5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCourseNotFound_Returns404(t *testing.T) {
	fake := newFakeCanvas()
	fake.routes["GET /api/v1/courses"] = coursesJSON
	w := do(t, newTestMux(t, fake), "GET", "/courses/chemistry/assignments", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body map[string]string
	decodeJSON(t, w, &body)
	if body["status"] != "error" || !strings.Contains(body["error"], `"chemistry"`) {
		t.Errorf("unexpected error body %v", body)
	}
}

func TestBackendErrors_Mapped(t *testing.T) {
	tests := []struct {
		backend int
		want    int
	}{
		{http.StatusForbidden, http.StatusForbidden},
		{http.StatusInternalServerError, http.StatusBadGateway},
	}
	for _, tt := range tests {
		fake := newFakeCanvas()
		fake.statuses["GET /api/v1/courses"] = tt.backend
		w := do(t, newTestMux(t, fake), "GET", "/courses", "")
		if w.Code != tt.want {
			t.Errorf("backend %d: expected %d, got %d", tt.backend, tt.want, w.Code)
		}
	}
}

func TestGetAssignment_NonNumericID(t *testing.T) {
	fake := newFakeCanvas()
	w := do(t, newTestMux(t, fake), "GET", "/courses/1/assignments/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected no backend calls, got %v", fake.calls)
	}
}

func TestUpdateDates_EmptyBodyRejected(t *testing.T) {
	fake := newFakeCanvas()
	mux := newTestMux(t, fake)

	for _, target := range []string{"/courses/1/assignments/10/dates", "/courses/middleware/quizzes/3/dates"} {
		for _, body := range []string{"", "{}", `{"title":"x"}`} {
			w := do(t, mux, "PATCH", target, body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("%s %q: expected 400, got %d", target, body, w.Code)
			}
			var resp map[string]string
			decodeJSON(t, w, &resp)
			if resp["error"] != "At least one date field is required: due_at, unlock_at, or lock_at." {
				t.Errorf("unexpected error %q", resp["error"])
			}
		}
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected zero backend calls, got %v", fake.calls)
	}
}

func TestUpdateAssignmentDates_NullClearsOnlyThatField(t *testing.T) {
	fake := newFakeCanvas()
	fake.routes["PUT /api/v1/courses/1/assignments/10"] = `{"id":10,"name":"Essay 1","lock_at":null}`
	w := do(t, newTestMux(t, fake), "PATCH", "/courses/1/assignments/10/dates", `{"lock_at":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	sent := fake.bodies["PUT /api/v1/courses/1/assignments/10"]
	if sent != `{"assignment":{"lock_at":null}}` {
		t.Errorf("unexpected PUT body %s", sent)
	}
}

func TestUpdateQuizDates(t *testing.T) {
	fake := newFakeCanvas()
	fake.routes["PUT /api/v1/courses/1/quizzes/3"] = `{"id":3,"title":"Quiz 1","due_at":"2026-03-01T00:00:00Z"}`
	w := do(t, newTestMux(t, fake), "PATCH", "/courses/1/quizzes/3/dates", `{"due_at":"2026-03-01T00:00:00Z"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if sent := fake.bodies["PUT /api/v1/courses/1/quizzes/3"]; !strings.HasPrefix(sent, `{"quiz":`) {
		t.Errorf("unexpected PUT body %s", sent)
	}
}

func TestListAndGetQuizzes(t *testing.T) {
	fake := newFakeCanvas()
	fake.routes["GET /api/v1/courses/1/quizzes"] = `[{"id":3,"title":"Quiz 1"}]`
	fake.routes["GET /api/v1/courses/1/quizzes/3"] = `{"id":3,"title":"Quiz 1"}`
	mux := newTestMux(t, fake)

	if w := do(t, mux, "GET", "/courses/1/quizzes", ""); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Quiz 1") {
		t.Errorf("list quizzes: %d %s", w.Code, w.Body.String())
	}
	if w := do(t, mux, "GET", "/courses/1/quizzes/3", ""); w.Code != http.StatusOK {
		t.Errorf("get quiz: %d %s", w.Code, w.Body.String())
	}
}

// --- Bulk ---

func TestBulkDueDate_Validation(t *testing.T) {
	fake := newFakeCanvas()
	mux := newTestMux(t, fake)
	for _, body := range []string{`{"due_at":"2026-03-01T00:00:00Z"}`, `{"query_terms":["essay"]}`, `{"query_terms":[" "],"due_at":"x"}`, `not json`} {
		w := do(t, mux, "PATCH", "/courses/1/assignments/bulk-due-date", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected zero backend calls, got %v", fake.calls)
	}
}

func TestBulkDueDate_DryRun(t *testing.T) {
	fake := newFakeCanvas()
	fake.routes["GET /api/v1/courses/1/assignments"] = assignmentsJSON
	w := do(t, newTestMux(t, fake), "PATCH", "/courses/1/assignments/bulk-due-date",
		`{"query_terms":["Essay"],"due_at":"2026-03-01T00:00:00Z","dry_run":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res tools.BulkDueDateResult
	decodeJSON(t, w, &res)
	if res.MatchedCount != 2 || res.UpdatedCount != 0 {
		t.Errorf("unexpected counts %+v", res)
	}
	for _, item := range res.Items {
		if item.Status != tools.BulkMatchedOnly {
			t.Errorf("expected matched_only, got %s", item.Status)
		}
	}
	if n := fake.count("PUT"); n != 0 {
		t.Errorf("dry run issued %d PUTs", n)
	}
}

// --- Tools ---

func TestToolsList(t *testing.T) {
	w := do(t, newTestMux(t, newFakeCanvas()), "GET", "/tools", "")
	var list []ToolInfo
	decodeJSON(t, w, &list)
	if len(list) == 0 {
		t.Fatal("expected tools")
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name > list[i].Name {
			t.Fatalf("tools not sorted: %s before %s", list[i-1].Name, list[i].Name)
		}
	}
}

func TestToolsCall(t *testing.T) {
	fake := newFakeCanvas()
	fake.routes["GET /api/v1/courses"] = coursesJSON
	mux := newTestMux(t, fake)

	w := do(t, mux, "POST", "/tools/canvas_list_courses", "")
	var res tools.Result
	decodeJSON(t, w, &res)
	if w.Code != http.StatusOK || res.IsError || !strings.Contains(res.Content, "Databases") {
		t.Errorf("unexpected result %d %+v", w.Code, res)
	}

	w = do(t, mux, "POST", "/tools/canvas_list_modules", `{}`)
	decodeJSON(t, w, &res)
	if w.Code != http.StatusOK || !res.IsError || !strings.Contains(res.Content, "course_id") {
		t.Errorf("expected validation envelope, got %d %+v", w.Code, res)
	}

	w = do(t, mux, "POST", "/tools/canvas_does_not_exist", `{}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown tool, got %d", w.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &tools.ValidationError{Fields: []tools.FieldError{{Field: "x", Problem: "is required"}}}, http.StatusBadRequest},
		{"empty dates", canvas.ErrNoDateFields, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("resolve: %w", &resolver.NotFoundError{Kind: "Course", Query: "x"}), http.StatusNotFound},
		{"unknown tool", fmt.Errorf("%w: nope", tools.ErrToolNotFound), http.StatusNotFound},
		{"canvas 401", &canvas.APIError{StatusCode: http.StatusUnauthorized}, http.StatusUnauthorized},
		{"canvas 503", &canvas.APIError{StatusCode: http.StatusServiceUnavailable}, http.StatusBadGateway},
		{"unreachable", fmt.Errorf("%w: dial tcp", canvas.ErrUnreachable), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor = %d, want %d", got, tt.want)
			}
		})
	}
}
