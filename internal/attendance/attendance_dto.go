package attendance

type CreateAttendanceRequest struct {
	UserID   string  `json:"user_id" binding:"required,uuid"`
	Date     string  `json:"date" binding:"required,datetime=2006-01-02"`
	CheckIn  *string `json:"check_in" binding:"omitempty"`
	CheckOut *string `json:"check_out" binding:"omitempty"`
	Status   *string `json:"status" binding:"omitempty,oneof=PRESENT LATE ABSENT"`
	Note     *string `json:"note" binding:"omitempty,max=2000"`
}

type UpdateAttendanceRequest struct {
	CheckIn  *string `json:"check_in" binding:"omitempty"`
	CheckOut *string `json:"check_out" binding:"omitempty"`
	Status   *string `json:"status" binding:"omitempty,oneof=PRESENT LATE ABSENT"`
	Note     *string `json:"note" binding:"omitempty,max=2000"`
}

type ListAttendanceQuery struct {
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=PRESENT LATE ABSENT"`
	FromDate string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=10" binding:"omitempty,min=1,max=100"`
}

type AttendanceResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Date     string  `json:"date"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Status   string  `json:"status"`
	Note     *string `json:"note,omitempty"`
}
