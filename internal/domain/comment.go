package domain

import "time"

// Comment is the domain representation of a comment on a post.
type Comment struct {
	ID             uint      `json:"id"`
	Text           string    `json:"text"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	PostID         uint      `json:"post_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToDomain converts CommentModel to domain Comment.
func (m *CommentModel) ToDomain() *Comment {
	return &Comment{
		ID:             m.ID,
		Text:           m.Text,
		AuthorID:       m.AuthorID,
		AuthorUsername: m.Author.Username,
		PostID:         m.PostID,
		CreatedAt:      m.CreatedAt,
	}
}

// CommentForm is the form for adding a comment to a post.
type CommentForm struct {
	Text string `form:"text"`
}
