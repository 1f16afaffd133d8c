package canvas

import (
	"context"
	"net/http"
	"net/url"
)

// ListAnnouncements returns announcements across one or more courses.
func (c *Client) ListAnnouncements(ctx context.Context, courseIDs ...int64) ([]Announcement, error) {
	params := url.Values{}
	for _, id := range courseIDs {
		params.Add("context_codes[]", "course_"+idString(id))
	}
	return getAllPages[Announcement](ctx, c, "announcements", params)
}

// PostAnnouncement posts a new announcement to the course.
func (c *Client) PostAnnouncement(ctx context.Context, courseID int64, title, message string) (*DiscussionTopic, error) {
	body := map[string]any{
		"title":           title,
		"message":         message,
		"is_announcement": true,
	}
	var t DiscussionTopic
	if err := c.sendJSON(ctx, http.MethodPost, "courses/"+idString(courseID)+"/discussion_topics", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListDiscussionTopics returns the course discussion topics.
func (c *Client) ListDiscussionTopics(ctx context.Context, courseID int64) ([]DiscussionTopic, error) {
	return getAllPages[DiscussionTopic](ctx, c, "courses/"+idString(courseID)+"/discussion_topics", nil)
}

// ListDiscussionEntries returns the top-level entries of a topic.
func (c *Client) ListDiscussionEntries(ctx context.Context, courseID, topicID int64) ([]DiscussionEntry, error) {
	path := "courses/" + idString(courseID) + "/discussion_topics/" + idString(topicID) + "/entries"
	return getAllPages[DiscussionEntry](ctx, c, path, nil)
}

// PostDiscussionReply replies to a topic.
func (c *Client) PostDiscussionReply(ctx context.Context, courseID, topicID int64, message string) (*DiscussionEntry, error) {
	var e DiscussionEntry
	path := "courses/" + idString(courseID) + "/discussion_topics/" + idString(topicID) + "/entries"
	if err := c.sendJSON(ctx, http.MethodPost, path, map[string]any{"message": message}, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
