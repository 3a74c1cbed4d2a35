package domain

// CreateBoardRequest payload for creating a board
type CreateBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StartTopicRequest payload for creating a topic with its first post
type StartTopicRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ReplyRequest payload for appending a post to a topic
type ReplyRequest struct {
	Message string `json:"message"`
}

// EditPostRequest payload for editing a post's message
type EditPostRequest struct {
	Message string `json:"message"`
}

// ReplyResult is returned after a successful reply: the created post, the
// page it landed on and the path the web layer should redirect to
// (.../topics/{topicID}/?page={page}#{postID}).
type ReplyResult struct {
	Post        *Post  `json:"post"`
	Page        int    `json:"page"`
	RedirectURL string `json:"redirect_url"`
}

// TopicPage is one page of a topic's posts together with the topic itself
// and the navigation window computed by the pagination engine.
type TopicPage struct {
	Topic     *Topic  `json:"topic"`
	Posts     []*Post `json:"posts"`
	Page      int     `json:"page"`
	PageCount int     `json:"page_count"`
	PageRange []int   `json:"page_range"`
}

// BoardPage is one page of a board's topics ordered by last activity.
type BoardPage struct {
	Board     *Board          `json:"board"`
	Topics    []*TopicSummary `json:"topics"`
	Page      int             `json:"page"`
	PageCount int             `json:"page_count"`
	PageRange []int           `json:"page_range"`
}
