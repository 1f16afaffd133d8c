package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/canvas-mcp/internal/app"
	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/config"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/courses":
			w.Write([]byte(`[{"id":7,"name":"Intro to Middleware"}]`))
		case "/api/v1/courses/7/assignments":
			w.Write([]byte(`[{"id":1,"name":"Essay","due_at":null}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[{"message":"not found"}]}`))
		}
	}))
	t.Cleanup(backend.Close)

	cfg := config.NewDefaultConfig()
	cfg.Storage.Badger.Path = t.TempDir()

	application, err := app.NewWithCredentials(cfg, config.Credentials{Token: "tok", Domain: backend.URL}, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}

	t.Cleanup(func() {
		application.Close()
	})

	return application
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if !body["ok"] {
		t.Errorf("expected ok=true, got %v", body)
	}
}

func TestRoutes_CourseNameResolvedForAssignments(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/courses/middleware/assignments", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"name":"Essay"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestRoutes_UnknownPathIsJSON404(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %s", ct)
	}
}

func TestRoutes_ToolsDispatch(t *testing.T) {
	srv := New(newTestApp(t))

	req := httptest.NewRequest("POST", "/tools/canvas_list_courses", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	var res struct {
		IsError bool   `json:"is_error"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if res.IsError || !strings.Contains(res.Content, "Intro to Middleware") {
		t.Errorf("unexpected tool result %+v", res)
	}
}

func TestRoutes_MCPEndpointMounted(t *testing.T) {
	srv := New(newTestApp(t))

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`
	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "canvas_list_courses") {
		t.Errorf("tools/list over HTTP should include canvas tools: %s", w.Body.String())
	}
}
