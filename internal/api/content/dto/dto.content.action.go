package dto

// ContentActionInput dữ liệu đầu vào khi gọi một action trên content record.
// Action nằm trên URL, body chỉ mang dữ liệu phụ trợ cho từng verb.
type ContentActionInput struct {
	// ScheduledAt bắt buộc khi play từ draft chưa có lịch, hoặc khi resume
	// một record paused mà scheduledAt cũ đã ở quá khứ.
	ScheduledAt *int64 `json:"scheduledAt,omitempty"`

	// Prompt bổ sung cho regenerate/recreate, truyền nguyên văn cho AI.
	Prompt string `json:"prompt,omitempty" validate:"omitempty,max=5000"`

	// ExpectedVersion nếu có thì action chỉ áp dụng khi record còn ở đúng
	// version này, ngược lại trả về ConcurrentModification.
	ExpectedVersion *int64 `json:"expectedVersion,omitempty"`
}

// ExtendCalendarInput dữ liệu đầu vào khi kéo dài lịch của project thêm N ngày.
type ExtendCalendarInput struct {
	Days int `json:"days" validate:"required,min=1,max=365"` // Số ngày cần thêm vào lịch

	// Platforms ghi đè danh sách platform mặc định của project (tùy chọn).
	Platforms []string `json:"platforms,omitempty" validate:"omitempty,dive,content_platform"`

	// ContentType cho các draft mới, mặc định là post.
	ContentType string `json:"contentType,omitempty" validate:"omitempty,content_type"`
}
