package domain

import "time"

// Follow is the domain representation of a follow edge: the follower
// receives the followed author's posts in their follow feed.
type Follow struct {
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
