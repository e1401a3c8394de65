package domain

import "time"

// Todo is a single task line belonging to a user.
type Todo struct {
	ID        int64     `json:"id"`
	Task      string    `json:"task"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	User      *User     `json:"user,omitempty"`
}
