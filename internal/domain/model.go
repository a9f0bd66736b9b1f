package domain

import (
	"time"
)

// UserModel is the GORM model for the users table. Rows are provisioned by
// the identity system; this service reads authors and removes accounts.
type UserModel struct {
	ID          string    `gorm:"type:varchar(36);primaryKey"`
	Username    string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	DisplayName string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }

// GroupModel is the GORM model for the groups table.
type GroupModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Slug        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (GroupModel) TableName() string { return "groups" }

// PostModel is the GORM model for the posts table.
// GroupID is a nullable reference: removing a group clears it, never the post.
type PostModel struct {
	ID        uint        `gorm:"primaryKey;autoIncrement"`
	Text      string      `gorm:"type:text;not null"`
	AuthorID  string      `gorm:"type:varchar(36);index;not null"`
	Author    UserModel   `gorm:"foreignKey:AuthorID"`
	GroupID   *uint       `gorm:"index"`
	Group     *GroupModel `gorm:"foreignKey:GroupID"`
	ImageKey  string      `gorm:"type:varchar(255)"`
	CreatedAt time.Time   `gorm:"autoCreateTime;index"`
}

func (PostModel) TableName() string { return "posts" }

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Text      string    `gorm:"type:text;not null"`
	AuthorID  string    `gorm:"type:varchar(36);index;not null"`
	Author    UserModel `gorm:"foreignKey:AuthorID"`
	PostID    uint      `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CommentModel) TableName() string { return "comments" }

// FollowModel is the GORM model for the follows table. The composite unique
// index makes duplicate-follow races collapse into a constraint violation.
type FollowModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FollowerID  string    `gorm:"column:follower_id;type:varchar(36);not null;uniqueIndex:uidx_follow_pair"`
	FollowingID string    `gorm:"column:following_id;type:varchar(36);not null;uniqueIndex:uidx_follow_pair"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }
