package domain

import "time"

// Group is a community posts can be published into.
type Group struct {
	ID          uint      `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDomain converts GroupModel to domain Group.
func (m *GroupModel) ToDomain() *Group {
	return &Group{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

// GroupToModel converts domain Group to GroupModel.
func GroupToModel(g *Group) *GroupModel {
	return &GroupModel{
		ID:          g.ID,
		Slug:        g.Slug,
		Title:       g.Title,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
	}
}

// CreateGroupRequest is the admin request to create a group.
type CreateGroupRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description"`
}

// UpdateGroupRequest is the admin request to edit a group.
type UpdateGroupRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// GroupRef is the compact group reference embedded in post payloads.
type GroupRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}
