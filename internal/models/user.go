package models

import "time"

// User is an admin account. The only user is created at first boot;
// nothing in the service creates, updates, or deletes users after that.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"created_at"`
}
