package entity

import "github.com/iliri/iliri-api/internal/domain/enum"

// User is the signed-in operator as remembered between restarts
type User struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Theme enum.Theme `json:"theme"`
}

// AuthState is the blob persisted under AuthStorageKey
type AuthState struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

// AuthStorage wraps AuthState the way it is written to storage
type AuthStorage struct {
	State AuthState `json:"state"`
}
