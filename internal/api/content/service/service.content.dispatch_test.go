// Package contentsvc - Test action dispatcher: verb không hỗ trợ và payload
// gửi sang AI collaborator cho regenerate/recreate.
package contentsvc

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"content_pilot/internal/api/aigen"
	contentmodels "content_pilot/internal/api/content/models"
	"content_pilot/internal/common"
)

func TestDispatch_ActionKhongHoTro(t *testing.T) {
	// Verb lạ bị chặn ngay ở dispatcher, chưa đụng tới DB.
	s := &ContentActionService{}
	_, err := s.Dispatch(context.Background(), primitive.NewObjectID(), "archive", nil, nil)
	if err == nil {
		t.Fatal("verb không hỗ trợ phải trả về lỗi")
	}
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("lỗi không phải *common.Error: %v", err)
	}
	if customErr.Code.Code != common.ErrCodeValidationInput.Code {
		t.Errorf("mã lỗi = %s, muốn %s", customErr.Code.Code, common.ErrCodeValidationInput.Code)
	}
	details, ok := customErr.Details.(map[string]interface{})
	if !ok || details["action"] != "archive" {
		t.Errorf("details phải mang action bị từ chối, nhận %v", customErr.Details)
	}
}

func TestEnhanceField_FieldKhongHoTro(t *testing.T) {
	// Field lạ bị chặn trước khi chạm DB.
	s := &ContentActionService{}
	_, err := s.EnhanceField(context.Background(), primitive.NewObjectID(), "hashtags", nil)
	if err == nil {
		t.Fatal("field không hỗ trợ phải trả về lỗi")
	}
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("lỗi không phải *common.Error: %v", err)
	}
	if customErr.Code.Code != common.ErrCodeValidationInput.Code {
		t.Errorf("mã lỗi = %s, muốn %s", customErr.Code.Code, common.ErrCodeValidationInput.Code)
	}
}

func TestBuildGenerationRequest_RegenerateGuiNoiDungCu(t *testing.T) {
	record := &contentmodels.ContentRecord{
		Platform:    "instagram",
		ContentType: "reel",
		Title:       "Tiêu đề cũ",
		Description: "Mô tả cũ",
		Hashtags:    []string{"a", "b"},
	}

	genReq := buildGenerationRequest(record, aigen.ModeRegenerate, "thêm CTA")
	if genReq.Mode != aigen.ModeRegenerate {
		t.Errorf("mode = %s", genReq.Mode)
	}
	if genReq.Title != "Tiêu đề cũ" || genReq.Description != "Mô tả cũ" {
		t.Error("regenerate phải gửi kèm nội dung hiện có")
	}
	if !reflect.DeepEqual(genReq.Hashtags, []string{"a", "b"}) {
		t.Errorf("regenerate phải gửi kèm hashtags, nhận %v", genReq.Hashtags)
	}
	if genReq.Prompt != "thêm CTA" {
		t.Errorf("prompt = %s", genReq.Prompt)
	}
}

func TestBuildGenerationRequest_RecreateKhongGuiNoiDungCu(t *testing.T) {
	record := &contentmodels.ContentRecord{
		Platform:    "tiktok",
		ContentType: "video",
		Title:       "Tiêu đề cũ",
		Description: "Mô tả cũ",
		Hashtags:    []string{"a"},
	}

	genReq := buildGenerationRequest(record, aigen.ModeRecreate, "")
	if genReq.Platform != "tiktok" || genReq.ContentType != "video" {
		t.Error("recreate vẫn phải gửi ngữ cảnh platform/contentType")
	}
	if genReq.Title != "" || genReq.Description != "" || genReq.Hashtags != nil {
		t.Errorf("recreate không được gửi nội dung cũ, nhận %+v", genReq)
	}
}
