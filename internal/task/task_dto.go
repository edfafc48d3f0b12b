package task

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Priority    string  `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH"`
	AssigneeID  *string `json:"assignee_id" binding:"omitempty,uuid"`
	DueDate     *string `json:"due_date" binding:"omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID  *string `json:"assignee_id" binding:"omitempty,uuid"`
	Status      *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE BLOCKED"`
	DueDate     *string `json:"due_date" binding:"omitempty"`
}

// RestrictedFields lists everything an update touches besides status.
// Self-scoped callers must send none of them.
func (r UpdateTaskRequest) RestrictedFields() []string {
	var fields []string
	if r.Title != nil {
		fields = append(fields, "title")
	}
	if r.Description != nil {
		fields = append(fields, "description")
	}
	if r.Priority != nil {
		fields = append(fields, "priority")
	}
	if r.AssigneeID != nil {
		fields = append(fields, "assignee_id")
	}
	if r.DueDate != nil {
		fields = append(fields, "due_date")
	}
	return fields
}

type ListTasksQuery struct {
	Q          string `form:"q"`
	Status     string `form:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE BLOCKED"`
	Priority   string `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID string `form:"assignee_id" binding:"omitempty,uuid"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=10" binding:"omitempty,min=1,max=100"`
}

type AddCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}

type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	CreatedByID string  `json:"created_by_id"`
	AssigneeID  *string `json:"assignee_id"`
	DueDate     *string `json:"due_date,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	AuthorID  string `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}
