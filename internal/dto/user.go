package dto

// ── user module DTOs ──

// UserResponse user summary
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// UpdateUserRequest partial profile update
type UpdateUserRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// AssignRoleRequest role assignment
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=superadmin admin company"`
}
