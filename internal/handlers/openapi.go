package handlers

import (
	"net/http"

	"github.com/bobmcallan/canvas-mcp/internal/common"
)

type object = map[string]any

func pathParam(name string) object {
	return object{"name": name, "in": "path", "required": true, "schema": object{"type": "integer"}}
}

func queryParam(name string, schema object) object {
	return object{"name": name, "in": "query", "required": false, "schema": schema}
}

func operation(id, summary string, params []object, responses object) object {
	op := object{"operationId": id, "summary": summary, "responses": responses}
	if len(params) > 0 {
		op["parameters"] = params
	}
	return op
}

func okResponse(description string) object {
	return object{"200": object{"description": description}}
}

func jsonBody(schema object) object {
	return object{
		"required": true,
		"content":  object{"application/json": object{"schema": schema}},
	}
}

func datesBody() object {
	nullable := func(desc string) object {
		return object{"type": []string{"string", "null"}, "description": desc}
	}
	return jsonBody(object{
		"type": "object",
		"properties": object{
			"due_at":    nullable("ISO-8601 date. Example: 2026-02-20T23:59:00Z"),
			"unlock_at": nullable("ISO-8601 date or null"),
			"lock_at":   nullable("ISO-8601 date or null"),
		},
	})
}

func withBadRequest(description string) object {
	return object{
		"200": object{"description": description},
		"400": object{"description": "Invalid payload"},
	}
}

// OpenAPIDocument builds the OpenAPI 3.1 description of the HTTP facade.
// serverURL is omitted from the document when empty.
func OpenAPIDocument(serverURL string) map[string]any {
	course := pathParam("courseId")
	assignment := pathParam("assignmentId")
	quiz := pathParam("quizId")

	doc := object{
		"openapi": "3.1.0",
		"info": object{
			"title":       "Canvas MCP HTTP API",
			"version":     common.GetVersion(),
			"description": "HTTP facade for Canvas operations, suitable for GPT Builder Actions.",
		},
		"paths": object{
			"/health":  object{"get": operation("health", "Health check", nil, okResponse("Server is healthy"))},
			"/privacy": object{"get": operation("getPrivacyPolicy", "Privacy policy", nil, okResponse("Privacy policy text"))},
			"/courses": object{"get": operation("listCourses", "List active Canvas courses", nil, okResponse("Courses list"))},
			"/courses/{courseId}/assignments": object{
				"get": operation("listAssignments",
					"List course assignments (compact by default to avoid large responses)",
					[]object{
						course,
						queryParam("search", object{"type": "string"}),
						queryParam("limit", object{"type": "integer", "default": defaultAssignmentLimit, "minimum": 1, "maximum": maxAssignmentLimit}),
						queryParam("upcomingOnly", object{"type": "boolean", "default": false}),
						queryParam("full", object{"type": "boolean", "default": false}),
					},
					okResponse("Assignments list")),
			},
			"/courses/{courseId}/assignments/{assignmentId}": object{
				"get": operation("getAssignment", "Get assignment details", []object{course, assignment}, okResponse("Assignment details")),
			},
			"/courses/{courseId}/assignments/{assignmentId}/dates": object{
				"patch": withBody(
					operation("updateAssignmentDates", "Update assignment due/unlock/lock dates", []object{course, assignment}, withBadRequest("Updated assignment")),
					datesBody()),
			},
			"/courses/{courseId}/assignments/bulk-due-date": object{
				"patch": withBody(
					operation("bulkUpdateDueDates", "Set one due date on every assignment whose name contains all query terms", []object{course}, withBadRequest("Per-assignment outcomes and counts")),
					jsonBody(object{
						"type":     "object",
						"required": []string{"query_terms", "due_at"},
						"properties": object{
							"query_terms": object{"type": "array", "items": object{"type": "string"}, "minItems": 1},
							"due_at":      object{"type": "string", "description": "ISO-8601 date"},
							"limit":       object{"type": "integer", "default": 20, "minimum": 1, "maximum": 100},
							"dry_run":     object{"type": "boolean", "default": false},
						},
					})),
			},
			"/courses/{courseId}/quizzes": object{
				"get": operation("listQuizzes", "List course quizzes", []object{course}, okResponse("Quizzes list")),
			},
			"/courses/{courseId}/quizzes/{quizId}": object{
				"get": operation("getQuiz", "Get quiz details", []object{course, quiz}, okResponse("Quiz details")),
			},
			"/courses/{courseId}/quizzes/{quizId}/dates": object{
				"patch": withBody(
					operation("updateQuizDates", "Update quiz due/unlock/lock dates", []object{course, quiz}, withBadRequest("Updated quiz")),
					datesBody()),
			},
			"/tools": object{
				"get": operation("listTools", "List the available Canvas tools and their parameters", nil, okResponse("Tool catalog")),
			},
			"/tools/{name}": object{
				"post": withBody(
					operation("callTool", "Invoke a Canvas tool with an argument object",
						[]object{{"name": "name", "in": "path", "required": true, "schema": object{"type": "string"}}},
						object{
							"200": object{"description": "Tool result envelope {is_error, content}"},
							"404": object{"description": "Unknown tool"},
						}),
					jsonBody(object{"type": "object"})),
			},
		},
	}
	if serverURL != "" {
		doc["servers"] = []object{{"url": serverURL}}
	}
	return doc
}

func withBody(op, body object) object {
	op["requestBody"] = body
	return op
}

// OpenAPIHandler serves GET /openapi.json.
type OpenAPIHandler struct {
	doc map[string]any
}

// NewOpenAPIHandler builds the document once for serverURL.
func NewOpenAPIHandler(serverURL string) *OpenAPIHandler {
	return &OpenAPIHandler{doc: OpenAPIDocument(serverURL)}
}

// ServeHTTP handles GET /openapi.json.
func (h *OpenAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	WriteJSON(w, http.StatusOK, h.doc)
}
