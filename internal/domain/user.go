package domain

import "time"

// User is the domain representation of an author.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:          m.ID,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		CreatedAt:   m.CreatedAt,
	}
}
