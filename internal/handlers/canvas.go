package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
	"github.com/bobmcallan/canvas-mcp/internal/common"
	"github.com/bobmcallan/canvas-mcp/internal/resolver"
	"github.com/bobmcallan/canvas-mcp/internal/tools"
)

const (
	defaultAssignmentLimit = 50
	maxAssignmentLimit     = 200
)

// CanvasHandler serves the REST facade over courses, assignments and quizzes.
// Path courseId values may be a course name; they go through the resolver.
type CanvasHandler struct {
	client *canvas.Client
	logger *common.Logger
}

// NewCanvasHandler creates a handler backed by client.
func NewCanvasHandler(client *canvas.Client, logger *common.Logger) *CanvasHandler {
	return &CanvasHandler{client: client, logger: logger}
}

func (h *CanvasHandler) courseID(r *http.Request) (int64, error) {
	return resolver.CourseID(r.Context(), h.client, r.PathValue("courseId"))
}

// ListCourses handles GET /courses.
func (h *CanvasHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.client.ListCourses(r.Context())
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, courses)
}

// ListAssignments handles GET /courses/{courseId}/assignments.
// Query: search, limit (1..200, default 50), upcomingOnly, full.
func (h *CanvasHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	courseID, err := h.courseID(r)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}

	q := r.URL.Query()
	filter := tools.AssignmentFilter{
		Search:       q.Get("search"),
		UpcomingOnly: q.Get("upcomingOnly") == "true",
		Limit:        parseLimit(q.Get("limit")),
	}

	all, err := h.client.ListAssignments(r.Context(), courseID)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	list := tools.FilterAssignments(all, filter)

	if q.Get("full") == "true" {
		WriteJSON(w, http.StatusOK, list)
		return
	}
	compact := make([]tools.AssignmentSummary, len(list))
	for i, a := range list {
		compact[i] = tools.Summarize(a)
	}
	WriteJSON(w, http.StatusOK, compact)
}

// parseLimit reads the leading integer of raw, clamps it, and falls back to the default.
func parseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && (raw[end] >= '0' && raw[end] <= '9' || end == 0 && raw[end] == '-') {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return defaultAssignmentLimit
	}
	return tools.ClampLimit(n, 1, maxAssignmentLimit)
}

// GetAssignment handles GET /courses/{courseId}/assignments/{assignmentId}.
func (h *CanvasHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := pathID(r, "assignmentId")
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	courseID, err := h.courseID(r)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	a, err := h.client.GetAssignment(r.Context(), courseID, assignmentID)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

// UpdateAssignmentDates handles PATCH /courses/{courseId}/assignments/{assignmentId}/dates.
func (h *CanvasHandler) UpdateAssignmentDates(w http.ResponseWriter, r *http.Request) {
	h.updateDates(w, r, "assignmentId", func(courseID, id int64, dates canvas.DateUpdate) (any, error) {
		return h.client.UpdateAssignmentDates(r.Context(), courseID, id, dates)
	})
}

// ListQuizzes handles GET /courses/{courseId}/quizzes.
func (h *CanvasHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	courseID, err := h.courseID(r)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	quizzes, err := h.client.ListQuizzes(r.Context(), courseID)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, quizzes)
}

// GetQuiz handles GET /courses/{courseId}/quizzes/{quizId}.
func (h *CanvasHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quizId")
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	courseID, err := h.courseID(r)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	quiz, err := h.client.GetQuiz(r.Context(), courseID, quizID)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, quiz)
}

// UpdateQuizDates handles PATCH /courses/{courseId}/quizzes/{quizId}/dates.
func (h *CanvasHandler) UpdateQuizDates(w http.ResponseWriter, r *http.Request) {
	h.updateDates(w, r, "quizId", func(courseID, id int64, dates canvas.DateUpdate) (any, error) {
		return h.client.UpdateQuizDates(r.Context(), courseID, id, dates)
	})
}

// updateDates validates the body before resolving the course, so an empty
// update never reaches Canvas.
func (h *CanvasHandler) updateDates(w http.ResponseWriter, r *http.Request, idParam string, apply func(courseID, id int64, dates canvas.DateUpdate) (any, error)) {
	var dates canvas.DateUpdate
	if err := decodeBody(r, &dates); err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	if dates.IsEmpty() {
		WriteFailure(w, r, h.logger, canvas.ErrNoDateFields)
		return
	}
	id, err := pathID(r, idParam)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	courseID, err := h.courseID(r)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	updated, err := apply(courseID, id, dates)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

// BulkUpdateDueDates handles PATCH /courses/{courseId}/assignments/bulk-due-date.
func (h *CanvasHandler) BulkUpdateDueDates(w http.ResponseWriter, r *http.Request) {
	var req tools.BulkDueDateRequest
	if err := decodeBody(r, &req); err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	courseID, err := h.courseID(r)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	res, err := tools.BulkUpdateDueDates(r.Context(), h.client, courseID, req)
	if err != nil {
		WriteFailure(w, r, h.logger, err)
		return
	}
	h.logger.Info().
		Int64("course_id", courseID).
		Int("matched", res.MatchedCount).
		Int("updated", res.UpdatedCount).
		Int("errors", res.ErrorCount).
		Msg("bulk due date change")
	WriteJSON(w, http.StatusOK, res)
}
