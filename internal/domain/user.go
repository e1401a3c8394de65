package domain

import "time"

// User owns todos. The password is stored verbatim; the wire protocol has no
// credential handling and todo listings return the full owner record.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}
