// Package models - Test đảm bảo bảng enum ở đây và custom validator
// trong global (content_platform, content_type) luôn khớp nhau.
package models

import (
	"testing"

	"content_pilot/internal/global"
)

func TestValidatorParity_Platform(t *testing.T) {
	global.InitValidator()

	for p := range validPlatforms {
		if err := global.Validate.Var(p, "content_platform"); err != nil {
			t.Errorf("platform %s hợp lệ trong models nhưng bị validator từ chối: %v", p, err)
		}
	}
	// Giá trị ngoài enum phải bị cả hai bên từ chối.
	for _, p := range []string{"threads", "snapchat", "x"} {
		if IsValidPlatform(p) {
			t.Errorf("models không được chấp nhận platform %s", p)
		}
		if err := global.Validate.Var(p, "content_platform"); err == nil {
			t.Errorf("validator không được chấp nhận platform %s", p)
		}
	}
}

func TestValidatorParity_ContentType(t *testing.T) {
	global.InitValidator()

	for ct := range validContentTypes {
		if err := global.Validate.Var(ct, "content_type"); err != nil {
			t.Errorf("content type %s hợp lệ trong models nhưng bị validator từ chối: %v", ct, err)
		}
	}
	for _, ct := range []string{"podcast", "article"} {
		if IsValidContentType(ct) {
			t.Errorf("models không được chấp nhận content type %s", ct)
		}
		if err := global.Validate.Var(ct, "content_type"); err == nil {
			t.Errorf("validator không được chấp nhận content type %s", ct)
		}
	}
}
