package leave

type CreateLeaveRequest struct {
	FromDate string  `json:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate   string  `json:"to_date" binding:"required,datetime=2006-01-02"`
	Type     string  `json:"type" binding:"required,oneof=ANNUAL SICK UNPAID OTHER"`
	Reason   *string `json:"reason" binding:"omitempty,max=2000"`
}

type DecideLeaveRequest struct {
	Decision string  `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Note     *string `json:"note" binding:"omitempty,max=2000"`
}

type ListLeavesQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Type     string `form:"type" binding:"omitempty,oneof=ANNUAL SICK UNPAID OTHER"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	FromDate string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=10" binding:"omitempty,min=1,max=100"`
}

type LeaveResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	FromDate    string  `json:"from_date"`
	ToDate      string  `json:"to_date"`
	Type        string  `json:"type"`
	Reason      *string `json:"reason,omitempty"`
	Status      string  `json:"status"`
	DecidedByID *string `json:"decided_by_id,omitempty"`
	DecidedAt   *string `json:"decided_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
