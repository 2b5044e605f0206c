package request

// CreateUserRequest represents a staff account creation request (admin only)
type CreateUserRequest struct {
	FirstName string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName  string  `json:"last_name" binding:"required,min=2,max=100"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role" binding:"required"`
}

// UpdateUserRequest represents a user account update request
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	Active    *bool   `json:"active"`
}

// AdminResetPasswordRequest represents an admin password reset request
type AdminResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserFilterRequest represents user filter parameters
type UserFilterRequest struct {
	Search  string `form:"search"`
	Role    string `form:"role"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
