package dto

// ContentProjectCreateInput dữ liệu đầu vào khi tạo content project
type ContentProjectCreateInput struct {
	Name        string   `json:"name" validate:"required,max=200"`                               // Tên project (bắt buộc)
	Description string   `json:"description,omitempty" validate:"omitempty,max=2000"`            // Mô tả project
	Platforms   []string `json:"platforms,omitempty" validate:"omitempty,dive,content_platform"` // Các platform mặc định của project
}

// ContentProjectUpdateInput dữ liệu đầu vào khi cập nhật content project
type ContentProjectUpdateInput struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,max=200"`                    // Tên project
	Description string   `json:"description,omitempty" validate:"omitempty,max=2000"`            // Mô tả project
	Platforms   []string `json:"platforms,omitempty" validate:"omitempty,dive,content_platform"` // Các platform mặc định
	Status      string   `json:"status,omitempty"`                                               // active | archived
}
