package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Danh sách giá trị hợp lệ cho các enum của content record.
// Models package dùng bảng riêng (tránh import cycle); test trong
// content/models đảm bảo hai bên khớp nhau.
var (
	validPlatforms = map[string]bool{
		"instagram": true, "youtube": true, "tiktok": true, "linkedin": true,
		"facebook": true, "twitter": true, "pinterest": true,
	}
	validContentTypes = map[string]bool{
		"post": true, "reel": true, "short": true, "story": true,
		"video": true, "carousel": true, "live": true,
	}
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("content_platform", validateContentPlatform)
	_ = Validate.RegisterValidation("content_type", validateContentType)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerHTML",
		"fromCharCode",
		"window.location",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateContentPlatform kiểm tra platform nằm trong enum cố định.
// Empty string = optional, bỏ qua (dùng kèm omitempty).
func validateContentPlatform(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return validPlatforms[strings.ToLower(value)]
}

// validateContentType kiểm tra content type nằm trong enum cố định.
func validateContentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return validContentTypes[strings.ToLower(value)]
}
