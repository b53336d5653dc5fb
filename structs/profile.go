package structs

import "time"

// Profile is the user record kept by the backend.
type Profile struct {
	PK        string    `json:"pk"`
	SK        string    `json:"sk"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUserBody is the payload of POST /users.
type CreateUserBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"notblank,max=64"`
}

// UpdateProfileBody is the payload of PUT /users/me.
type UpdateProfileBody struct {
	AvatarURL string `json:"avatarUrl" validate:"required,url"`
}
