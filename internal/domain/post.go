package domain

import "time"

// Post is the domain representation of a published post.
type Post struct {
	ID             uint      `json:"id"`
	Text           string    `json:"text"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Group          *GroupRef `json:"group,omitempty"`
	ImageKey       string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToDomain converts PostModel to domain Post.
func (m *PostModel) ToDomain() *Post {
	p := &Post{
		ID:             m.ID,
		Text:           m.Text,
		AuthorID:       m.AuthorID,
		AuthorUsername: m.Author.Username,
		ImageKey:       m.ImageKey,
		CreatedAt:      m.CreatedAt,
	}
	if m.Group != nil {
		p.Group = &GroupRef{Slug: m.Group.Slug, Title: m.Group.Title}
	}
	return p
}

// PostResponse is a post in API payloads; ImageURL is resolved by the
// service from the stored blob key.
type PostResponse struct {
	ID             uint      `json:"id"`
	Text           string    `json:"text"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Group          *GroupRef `json:"group,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToResponse converts Post to PostResponse without the image URL.
func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:             p.ID,
		Text:           p.Text,
		AuthorID:       p.AuthorID,
		AuthorUsername: p.AuthorUsername,
		Group:          p.Group,
		CreatedAt:      p.CreatedAt,
	}
}

// PostForm is the multipart form for creating or editing a post.
// The image file part is handled separately by the handler.
type PostForm struct {
	Text  string `form:"text"`
	Group string `form:"group"` // group slug, empty for none
}
