package insight

type GenerateInsightsRequest struct {
	Type         string  `json:"type" binding:"required,oneof=HR_SUMMARY TASK_SUMMARY FIN_SUMMARY"`
	RangeFrom    *string `json:"rangeFrom" binding:"omitempty,datetime=2006-01-02"`
	RangeTo      *string `json:"rangeTo" binding:"omitempty,datetime=2006-01-02"`
	MaxSnapshots *int    `json:"maxSnapshots" binding:"omitempty,min=1,max=50"`
}

type ChatRequest struct {
	Question  string  `json:"question" binding:"required"`
	Type      string  `json:"type" binding:"required,oneof=HR_SUMMARY TASK_SUMMARY FIN_SUMMARY"`
	RangeFrom *string `json:"rangeFrom" binding:"omitempty,datetime=2006-01-02"`
	RangeTo   *string `json:"rangeTo" binding:"omitempty,datetime=2006-01-02"`
}
