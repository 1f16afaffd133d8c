package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	a := s.app

	// Service info
	mux.Handle("/health", a.HealthHandler)
	mux.Handle("/privacy", a.PrivacyHandler)
	mux.Handle("/openapi.json", a.OpenAPIHandler)
	mux.Handle("/version", a.VersionHandler)

	// Canvas REST facade
	mux.HandleFunc("GET /courses", a.CanvasHandler.ListCourses)
	mux.HandleFunc("GET /courses/{courseId}/assignments", a.CanvasHandler.ListAssignments)
	mux.HandleFunc("PATCH /courses/{courseId}/assignments/bulk-due-date", a.CanvasHandler.BulkUpdateDueDates)
	mux.HandleFunc("GET /courses/{courseId}/assignments/{assignmentId}", a.CanvasHandler.GetAssignment)
	mux.HandleFunc("PATCH /courses/{courseId}/assignments/{assignmentId}/dates", a.CanvasHandler.UpdateAssignmentDates)
	mux.HandleFunc("GET /courses/{courseId}/quizzes", a.CanvasHandler.ListQuizzes)
	mux.HandleFunc("GET /courses/{courseId}/quizzes/{quizId}", a.CanvasHandler.GetQuiz)
	mux.HandleFunc("PATCH /courses/{courseId}/quizzes/{quizId}/dates", a.CanvasHandler.UpdateQuizDates)

	// Tool registry
	mux.HandleFunc("GET /tools", a.ToolsHandler.List)
	mux.HandleFunc("POST /tools/{name}", a.ToolsHandler.Call)

	// MCP endpoint (JSON-RPC over streamable HTTP)
	if a.MCPHandler != nil {
		mux.Handle("/mcp", a.MCPHandler)
	}

	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"status":"error","error":"The requested endpoint does not exist"}`))
}
