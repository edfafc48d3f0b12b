package user

type CreateUserRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=255"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Role       string  `json:"role" binding:"required,oneof=ADMIN MANAGER EMPLOYEE"`
	Department *string `json:"department" binding:"omitempty,min=1,max=255"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Role       *string `json:"role" binding:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
	Department *string `json:"department" binding:"omitempty,min=1,max=255"`
}

type ListUsersQuery struct {
	Q          string `form:"q"`
	Role       string `form:"role" binding:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
	Department string `form:"department"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=10" binding:"omitempty,min=1,max=100"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Department *string `json:"department"`
	IsActive   bool    `json:"is_active"`
	CreatedAt  string  `json:"created_at"`
}
