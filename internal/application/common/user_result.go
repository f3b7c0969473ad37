package common

import (
	"time"

	"github.com/google/uuid"
)

// UserResult is the externally visible user view. The password digest, the
// token set and the avatar blob never appear here.
type UserResult struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
