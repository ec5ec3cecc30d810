package models

import "time"

type Profile struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name"`
	Age         *int      `json:"age"`
	Persona     *string   `json:"persona"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProfileUpdate carries optional user info; nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name"`
	Age         *int    `json:"age"`
	Persona     *string `json:"persona"`
}
