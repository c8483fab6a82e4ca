package user

import "time"

// UserResponse defines the response structure for user information.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `json:"token,omitempty"`
}

// UpdateUserInput defines the accepted fields for a profile update. All
// fields are optional; only provided ones are applied.
type UpdateUserInput struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=32"`
	Email    *string `json:"email" binding:"omitempty,email,max=64"`
	Password *string `json:"password" binding:"omitempty,min=8,max=128"`
	IsActive *bool   `json:"is_active"`
}

// ListUsersResponse wraps a paginated user listing.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
