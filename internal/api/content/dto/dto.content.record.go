package dto

// ContentRecordCreateInput dữ liệu đầu vào khi tạo content record.
// Status luôn khởi tạo là draft, client không được chỉ định.
type ContentRecordCreateInput struct {
	ProjectID   string   `json:"projectId,omitempty" transform:"str_objectid_ptr,optional"` // ID project chứa record (tùy chọn, record có thể đứng độc lập)
	DayNumber   int      `json:"dayNumber" validate:"min=0"`                                // Số thứ tự ngày trong lịch của project
	Title       string   `json:"title" validate:"required,no_xss,max=500"`                  // Tiêu đề nội dung (bắt buộc)
	Description string   `json:"description,omitempty" validate:"omitempty,no_xss,max=10000"` // Mô tả / caption
	Platform    string   `json:"platform" validate:"required,content_platform"`             // Platform: instagram, youtube, tiktok, linkedin, facebook, twitter, pinterest
	ContentType string   `json:"contentType" validate:"required,content_type"`              // Loại nội dung: post, reel, short, story, video, carousel, live
	Hashtags    []string `json:"hashtags,omitempty"`                                        // Danh sách hashtag (tối đa 30, trùng lặp bị loại im lặng)
	ScheduledAt *int64   `json:"scheduledAt,omitempty"`                                     // Thời gian dự kiến đăng (timestamp milliseconds)
}

// ContentRecordUpdateInput dữ liệu đầu vào khi sửa content record.
// Chỉ các trường nội dung được phép sửa; status/version/metadata do hệ thống quản lý.
type ContentRecordUpdateInput struct {
	Title       string   `json:"title,omitempty" validate:"omitempty,no_xss,max=500"`     // Tiêu đề nội dung
	Description string   `json:"description,omitempty" validate:"omitempty,no_xss,max=10000"` // Mô tả / caption
	Hashtags    []string `json:"hashtags,omitempty"`                      // Danh sách hashtag
	ScheduledAt *int64   `json:"scheduledAt,omitempty"`                   // Thời gian dự kiến đăng
}
