package canvas

import "encoding/json"

// Canvas returns loosely-typed payloads: any field may be absent or null
// depending on endpoint and include[] parameters. Optional scalars are
// pointers so that "absent" and "zero" stay distinguishable.

// Term is the enrollment term embedded in a course when include[]=term.
type Term struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Course is a Canvas course.
type Course struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	CourseCode       *string `json:"course_code,omitempty"`
	OriginalName     *string `json:"original_name,omitempty"`
	WorkflowState    *string `json:"workflow_state,omitempty"`
	EnrollmentTermID *int64  `json:"enrollment_term_id,omitempty"`
	Term             *Term   `json:"term,omitempty"`
}

// ModuleItem is one entry of a course module.
type ModuleItem struct {
	ID       int64   `json:"id"`
	ModuleID *int64  `json:"module_id,omitempty"`
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	HTMLURL  *string `json:"html_url,omitempty"`
}

// Module is a course module.
type Module struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Position      *int         `json:"position,omitempty"`
	WorkflowState *string      `json:"workflow_state,omitempty"`
	ItemsCount    *int         `json:"items_count,omitempty"`
	ItemsURL      *string      `json:"items_url,omitempty"`
	Items         []ModuleItem `json:"items,omitempty"`
	Published     *bool        `json:"published,omitempty"`
}

// RubricRating is one rating level of a rubric criterion.
type RubricRating struct {
	ID              string  `json:"id"`
	Description     string  `json:"description"`
	LongDescription string  `json:"long_description"`
	Points          float64 `json:"points"`
}

// RubricCriterion is one row of an assignment rubric.
type RubricCriterion struct {
	ID                string         `json:"id"`
	Description       string         `json:"description"`
	LongDescription   string         `json:"long_description"`
	Points            float64        `json:"points"`
	CriterionUseRange bool           `json:"criterion_use_range"`
	Ratings           []RubricRating `json:"ratings"`
}

// RubricSettings summarises the rubric attached to an assignment.
type RubricSettings struct {
	ID                        int64   `json:"id"`
	Title                     string  `json:"title"`
	PointsPossible            float64 `json:"points_possible"`
	FreeFormCriterionComments bool    `json:"free_form_criterion_comments"`
	HideScoreTotal            bool    `json:"hide_score_total"`
	HidePoints                bool    `json:"hide_points"`
}

// RubricScore is the assessment of one criterion when grading.
type RubricScore struct {
	RatingID *string `json:"rating_id,omitempty"`
	Points   float64 `json:"points"`
	Comments *string `json:"comments,omitempty"`
}

// RubricAssessment maps criterion id to its score.
type RubricAssessment map[string]RubricScore

// Assignment is a Canvas assignment. Date fields are ISO-8601 strings; a nil
// pointer means Canvas reported no date (null) or did not send the field.
type Assignment struct {
	ID                      *int64            `json:"id,omitempty"`
	Name                    string            `json:"name"`
	Description             *string           `json:"description,omitempty"`
	PointsPossible          *float64          `json:"points_possible"`
	DueAt                   *string           `json:"due_at"`
	UnlockAt                *string           `json:"unlock_at"`
	LockAt                  *string           `json:"lock_at"`
	Published               *bool             `json:"published,omitempty"`
	HasSubmittedSubmissions *bool             `json:"has_submitted_submissions,omitempty"`
	HTMLURL                 *string           `json:"html_url,omitempty"`
	Submission              *Submission       `json:"submission,omitempty"`
	Rubric                  []RubricCriterion `json:"rubric,omitempty"`
	RubricSettings          *RubricSettings   `json:"rubric_settings,omitempty"`
	UseRubricForGrading     *bool             `json:"use_rubric_for_grading,omitempty"`

	// Extra holds fields such as overrides, submission_types and
	// allowed_extensions that are passed through untouched.
	Extra map[string]json.RawMessage `json:"-"`
}

// Quiz is a classic Canvas quiz.
type Quiz struct {
	ID             *int64   `json:"id,omitempty"`
	Title          string   `json:"title"`
	Description    *string  `json:"description,omitempty"`
	DueAt          *string  `json:"due_at"`
	UnlockAt       *string  `json:"unlock_at"`
	LockAt         *string  `json:"lock_at"`
	Published      *bool    `json:"published,omitempty"`
	PointsPossible *float64 `json:"points_possible"`
	TimeLimit      *int     `json:"time_limit,omitempty"`
	HTMLURL        *string  `json:"html_url,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// WorkflowState is the grading state of a submission.
type WorkflowState string

const (
	StateSubmitted     WorkflowState = "submitted"
	StateUnsubmitted   WorkflowState = "unsubmitted"
	StateGraded        WorkflowState = "graded"
	StatePendingReview WorkflowState = "pending_review"
)

// FileAttachment is a Canvas file, either in course files or attached to a submission.
type FileAttachment struct {
	ID            int64   `json:"id"`
	UUID          string  `json:"uuid,omitempty"`
	FolderID      *int64  `json:"folder_id,omitempty"`
	DisplayName   string  `json:"display_name"`
	Filename      string  `json:"filename"`
	ContentType   string  `json:"content-type,omitempty"`
	URL           string  `json:"url"`
	Size          int64   `json:"size"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
	ModifiedAt    string  `json:"modified_at,omitempty"`
	UnlockAt      *string `json:"unlock_at,omitempty"`
	LockAt        *string `json:"lock_at,omitempty"`
	Locked        bool    `json:"locked"`
	Hidden        bool    `json:"hidden"`
	LockedForUser bool    `json:"locked_for_user"`
	HiddenForUser bool    `json:"hidden_for_user"`
	ThumbnailURL  *string `json:"thumbnail_url,omitempty"`
	PreviewURL    *string `json:"preview_url,omitempty"`
	MimeClass     string  `json:"mime_class,omitempty"`
	MediaEntryID  *string `json:"media_entry_id,omitempty"`
}

// Author is the compact user record Canvas embeds in comments and topics.
type Author struct {
	ID             int64   `json:"id"`
	AnonymousID    *string `json:"anonymous_id,omitempty"`
	DisplayName    string  `json:"display_name"`
	AvatarImageURL *string `json:"avatar_image_url,omitempty"`
	HTMLURL        *string `json:"html_url,omitempty"`
}

// SubmissionComment is a comment left on a submission.
type SubmissionComment struct {
	ID         int64   `json:"id"`
	AuthorID   int64   `json:"author_id"`
	AuthorName string  `json:"author_name"`
	Comment    string  `json:"comment"`
	CreatedAt  string  `json:"created_at"`
	EditedAt   *string `json:"edited_at,omitempty"`
	Attempt    *int    `json:"attempt,omitempty"`
	Author     *Author `json:"author,omitempty"`
}

// Submission is identified by (assignment_id, user_id). Late, Missing and
// Excused are independent and may co-occur.
type Submission struct {
	ID                 int64               `json:"id"`
	UserID             int64               `json:"user_id"`
	AssignmentID       int64               `json:"assignment_id"`
	Grade              *string             `json:"grade"`
	Score              *float64            `json:"score"`
	SubmittedAt        *string             `json:"submitted_at"`
	WorkflowState      WorkflowState       `json:"workflow_state"`
	Late               *bool               `json:"late,omitempty"`
	Missing            *bool               `json:"missing,omitempty"`
	Excused            *bool               `json:"excused,omitempty"`
	Body               *string             `json:"body,omitempty"`
	Attempt            *int                `json:"attempt,omitempty"`
	Attachments        []FileAttachment    `json:"attachments,omitempty"`
	SubmissionComments []SubmissionComment `json:"submission_comments,omitempty"`
	RubricAssessment   RubricAssessment    `json:"rubric_assessment,omitempty"`
	User               *User               `json:"user,omitempty"`
	Assignment         *Assignment         `json:"assignment,omitempty"`

	// Extra keeps submission_history, url, submission_type, graded_at and
	// the other fields this package does not model.
	Extra map[string]json.RawMessage `json:"-"`
}

// IsLate reports the late flag, treating absent as false.
func (s *Submission) IsLate() bool { return s.Late != nil && *s.Late }

// IsMissing reports the missing flag, treating absent as false.
func (s *Submission) IsMissing() bool { return s.Missing != nil && *s.Missing }

// IsUnsubmitted reports whether the student has not turned anything in.
func (s *Submission) IsUnsubmitted() bool {
	return s.WorkflowState == StateUnsubmitted || s.SubmittedAt == nil || *s.SubmittedAt == ""
}

// Grades carries enrollment grade fields; every value may be null when ungraded.
type Grades struct {
	HTMLURL              *string  `json:"html_url,omitempty"`
	CurrentGrade         *string  `json:"current_grade"`
	FinalGrade           *string  `json:"final_grade"`
	CurrentScore         *float64 `json:"current_score"`
	FinalScore           *float64 `json:"final_score"`
	CurrentPoints        *float64 `json:"current_points,omitempty"`
	UnpostedCurrentGrade *string  `json:"unposted_current_grade,omitempty"`
	UnpostedFinalGrade   *string  `json:"unposted_final_grade,omitempty"`
	UnpostedCurrentScore *float64 `json:"unposted_current_score,omitempty"`
	UnpostedFinalScore   *float64 `json:"unposted_final_score,omitempty"`
}

// Enrollment links a user to a course.
type Enrollment struct {
	ID              *int64  `json:"id,omitempty"`
	CourseID        *int64  `json:"course_id,omitempty"`
	UserID          *int64  `json:"user_id,omitempty"`
	Type            *string `json:"type,omitempty"`
	Role            *string `json:"role,omitempty"`
	EnrollmentState *string `json:"enrollment_state,omitempty"`
	Grades          *Grades `json:"grades,omitempty"`
}

// User is a Canvas user, typically a student enrolled in a course.
type User struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	SortableName *string      `json:"sortable_name,omitempty"`
	Email        *string      `json:"email,omitempty"`
	LoginID      *string      `json:"login_id,omitempty"`
	SISUserID    *string      `json:"sis_user_id,omitempty"`
	Enrollments  []Enrollment `json:"enrollments,omitempty"`
}

// Page is a wiki page. Body is only present in the detail view.
type Page struct {
	PageID    *int64  `json:"page_id,omitempty"`
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
	Body      *string `json:"body,omitempty"`
	Published bool    `json:"published"`
	FrontPage bool    `json:"front_page"`
}

// Announcement is an announcement topic returned by the announcements API.
type Announcement struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	PostedAt      *string `json:"posted_at"`
	DelayedPostAt *string `json:"delayed_post_at"`
	ContextCode   string  `json:"context_code"`
	URL           string  `json:"url,omitempty"`
	Author        *Author `json:"author,omitempty"`
}

// DiscussionTopic is a discussion (announcements are topics with is_announcement=true).
type DiscussionTopic struct {
	ID              int64            `json:"id"`
	Title           string           `json:"title"`
	Message         string           `json:"message"`
	HTMLURL         string           `json:"html_url,omitempty"`
	PostedAt        *string          `json:"posted_at"`
	DiscussionType  string           `json:"discussion_type,omitempty"`
	LockAt          *string          `json:"lock_at,omitempty"`
	Locked          bool             `json:"locked"`
	Pinned          bool             `json:"pinned"`
	Author          *Author          `json:"author,omitempty"`
	TopicChildren   []int64          `json:"topic_children,omitempty"`
	GroupCategoryID *int64           `json:"group_category_id,omitempty"`
	Attachments     []FileAttachment `json:"attachments,omitempty"`
}

// DiscussionEntry is a reply in a discussion topic.
type DiscussionEntry struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	UserName  string  `json:"user_name,omitempty"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at,omitempty"`
	ParentID  *int64  `json:"parent_id,omitempty"`
}

// CommentDeletion is returned after deleting a submission comment.
type CommentDeletion struct {
	Deleted   bool  `json:"deleted"`
	CommentID int64 `json:"comment_id"`
}
