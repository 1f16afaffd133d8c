package tools

import (
	"context"

	"github.com/bobmcallan/canvas-mcp/internal/canvas"
)

type announcementsInput struct {
	CourseIDs []ID `json:"course_ids"`
}

type topicInput struct {
	CourseID Identifier `json:"course_id"`
	TopicID  ID         `json:"topic_id"`
}

type postAnnouncementInput struct {
	CourseID Identifier `json:"course_id"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
}

type replyInput struct {
	CourseID Identifier `json:"course_id"`
	TopicID  ID         `json:"topic_id"`
	Message  string     `json:"message"`
}

// CommunicationTools read and post announcements and discussions.
func CommunicationTools() []Tool {
	topicID := idParam("topic_id", "The ID of the discussion topic")

	return []Tool{
		define("canvas_list_announcements", AreaCommunication,
			"List announcements for one or more courses",
			[]Param{{Name: "course_ids", Type: TypeIDArray, Description: "List of course IDs", Required: true}},
			func(ctx context.Context, c *canvas.Client, in announcementsInput) (string, error) {
				ids := make([]int64, 0, len(in.CourseIDs))
				for _, id := range in.CourseIDs {
					ids = append(ids, int64(id))
				}
				list, err := c.ListAnnouncements(ctx, ids...)
				if err != nil {
					return "", err
				}
				return jsonText(list)
			}),
		define("canvas_list_discussions", AreaCommunication,
			"List discussion topics in a course",
			[]Param{courseParam()},
			func(ctx context.Context, c *canvas.Client, in courseInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				topics, err := c.ListDiscussionTopics(ctx, id)
				if err != nil {
					return "", err
				}
				return jsonText(topics)
			}),
		define("canvas_get_discussion_entries", AreaCommunication,
			"Get entries (replies) for a discussion topic",
			[]Param{courseParam(), topicID},
			func(ctx context.Context, c *canvas.Client, in topicInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				entries, err := c.ListDiscussionEntries(ctx, id, int64(in.TopicID))
				if err != nil {
					return "", err
				}
				return jsonText(entries)
			}),
		define("canvas_post_announcement", AreaCommunication,
			"Post a new announcement to a course",
			[]Param{
				courseParam(),
				{Name: "title", Type: TypeString, Description: "The title of the announcement", Required: true},
				{Name: "message", Type: TypeString, Description: "The content/message of the announcement", Required: true},
			},
			func(ctx context.Context, c *canvas.Client, in postAnnouncementInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				topic, err := c.PostAnnouncement(ctx, id, in.Title, in.Message)
				if err != nil {
					return "", err
				}
				return jsonText(topic)
			}),
		define("canvas_post_discussion_reply", AreaCommunication,
			"Reply to a discussion topic",
			[]Param{
				courseParam(),
				topicID,
				{Name: "message", Type: TypeString, Description: "The reply message", Required: true},
			},
			func(ctx context.Context, c *canvas.Client, in replyInput) (string, error) {
				id, err := resolveCourse(ctx, c, in.CourseID)
				if err != nil {
					return "", err
				}
				entry, err := c.PostDiscussionReply(ctx, id, int64(in.TopicID), in.Message)
				if err != nil {
					return "", err
				}
				return jsonText(entry)
			}),
	}
}
