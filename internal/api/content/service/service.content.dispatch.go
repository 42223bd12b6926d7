package contentsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"content_pilot/internal/api/aigen"
	basesvc "content_pilot/internal/api/base/service"
	"content_pilot/internal/api/content/dto"
	contentmodels "content_pilot/internal/api/content/models"
	"content_pilot/internal/common"
	"content_pilot/internal/logger"
)

// ContentActionService là action dispatcher: nhận một verb + record id và
// định tuyến sang đúng nghiệp vụ. Lỗi từ tầng dưới trả về nguyên văn,
// không che hay đổi loại lỗi.
type ContentActionService struct {
	recordService *ContentRecordService
	generator     aigen.Generator
}

// NewContentActionService tạo mới ContentActionService
func NewContentActionService(generator aigen.Generator) (*ContentActionService, error) {
	recordService, err := NewContentRecordService()
	if err != nil {
		return nil, fmt.Errorf("failed to create content record service: %v", err)
	}
	return &ContentActionService{
		recordService: recordService,
		generator:     generator,
	}, nil
}

// RecordService trả về record service bên dưới, dùng khi wire handler.
func (s *ContentActionService) RecordService() *ContentRecordService {
	return s.recordService
}

// Dispatch định tuyến một action lên record. updateInput chỉ dùng cho verb
// update, actionInput mang dữ liệu phụ trợ cho các verb còn lại.
func (s *ContentActionService) Dispatch(ctx context.Context, id primitive.ObjectID, action string, actionInput *dto.ContentActionInput, updateInput *dto.ContentRecordUpdateInput) (contentmodels.ContentRecord, error) {
	if actionInput == nil {
		actionInput = &dto.ContentActionInput{}
	}

	switch action {
	case contentmodels.ContentActionView:
		return s.recordService.FindOneById(ctx, id)

	case contentmodels.ContentActionPlay,
		contentmodels.ContentActionPause,
		contentmodels.ContentActionStop,
		contentmodels.ContentActionDelete:
		return s.recordService.ApplyTransition(ctx, id, action, actionInput.ScheduledAt, actionInput.ExpectedVersion)

	case contentmodels.ContentActionUpdate:
		if updateInput == nil {
			var empty contentmodels.ContentRecord
			return empty, common.ErrInvalidInput
		}
		return s.recordService.UpdateContent(ctx, id, updateInput, actionInput.ExpectedVersion)

	case contentmodels.ContentActionRegenerate:
		return s.regenerate(ctx, id, aigen.ModeRegenerate, actionInput)

	case contentmodels.ContentActionRecreate:
		return s.regenerate(ctx, id, aigen.ModeRecreate, actionInput)

	default:
		var empty contentmodels.ContentRecord
		return empty, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Action '%s' không được hỗ trợ", action),
			common.StatusBadRequest, map[string]interface{}{
				"action": action,
			})
	}
}

// buildGenerationRequest dựng payload gửi sang AI collaborator. Regenerate
// gửi kèm nội dung hiện có để AI tinh chỉnh; recreate chỉ gửi ngữ cảnh
// platform/contentType, AI sinh lại từ đầu.
func buildGenerationRequest(record *contentmodels.ContentRecord, mode string, prompt string) *aigen.GenerationRequest {
	genReq := &aigen.GenerationRequest{
		Mode:        mode,
		Platform:    record.Platform,
		ContentType: record.ContentType,
		Prompt:      prompt,
	}
	if mode == aigen.ModeRegenerate {
		genReq.Title = record.Title
		genReq.Description = record.Description
		genReq.Hashtags = record.Hashtags
	}
	return genReq
}

// regenerate sinh lại nội dung của record bằng AI collaborator. Regenerate
// tinh chỉnh dựa trên nội dung hiện có, recreate sinh từ đầu. Cả hai giữ
// nguyên id, dayNumber, status và scheduledAt; chỉ phần nội dung thay đổi
// và metadata.aiGenerated bật lên true. AI lỗi hay timeout thì record giữ
// nguyên trạng, trả về GenerationFailed.
func (s *ContentActionService) regenerate(ctx context.Context, id primitive.ObjectID, mode string, input *dto.ContentActionInput) (contentmodels.ContentRecord, error) {
	record, err := s.recordService.loadForAction(ctx, id, input.ExpectedVersion)
	if err != nil {
		return record, err
	}

	if err := checkEditable(record.Status, mode); err != nil {
		return record, err
	}

	result, err := s.generator.Generate(ctx, buildGenerationRequest(&record, mode, input.Prompt))
	if err != nil {
		return record, common.NewGenerationFailedError(err)
	}

	set := map[string]interface{}{
		"title":                record.Title,
		"description":          record.Description,
		"metadata.aiGenerated": true,
	}
	if result.Title != "" {
		set["title"] = result.Title
	}
	if result.Description != "" {
		set["description"] = result.Description
	}
	if result.Hashtags != nil {
		set["hashtags"] = contentmodels.NormalizeHashtags(result.Hashtags)
	}
	if result.EngagementPrediction != nil {
		set["metadata.engagementPrediction"] = result.EngagementPrediction
	}
	if result.TargetAudience != nil {
		set["metadata.targetAudience"] = result.TargetAudience
	}

	updated, err := s.recordService.casUpdate(ctx, id, record.Version, &basesvc.UpdateData{Set: set})
	if err != nil {
		return updated, err
	}

	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"recordId": id.Hex(),
		"mode":     mode,
		"status":   updated.Status,
	}).Info("🤖 [CONTENT] Sinh lại nội dung bằng AI thành công")
	return updated, nil
}

// enhanceableFields là các field cho phép cải thiện đơn lẻ bằng AI.
var enhanceableFields = map[string]bool{
	"title":       true,
	"description": true,
}

// EnhanceField cải thiện một field đơn lẻ (title hoặc description) bằng AI,
// cùng gating và ngữ nghĩa giữ-nguyên-khi-lỗi như regenerate.
func (s *ContentActionService) EnhanceField(ctx context.Context, id primitive.ObjectID, field string, input *dto.ContentActionInput) (contentmodels.ContentRecord, error) {
	if input == nil {
		input = &dto.ContentActionInput{}
	}

	if !enhanceableFields[field] {
		var empty contentmodels.ContentRecord
		return empty, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Field '%s' không hỗ trợ enhance, chỉ nhận title hoặc description", field),
			common.StatusBadRequest, map[string]interface{}{
				"field": field,
			})
	}

	record, err := s.recordService.loadForAction(ctx, id, input.ExpectedVersion)
	if err != nil {
		return record, err
	}

	if err := checkEditable(record.Status, "enhance"); err != nil {
		return record, err
	}

	currentValue := record.Title
	if field == "description" {
		currentValue = record.Description
	}

	result, err := s.generator.EnhanceField(ctx, &aigen.EnhanceRequest{
		Field:        field,
		CurrentValue: currentValue,
		Platform:     record.Platform,
		ContentType:  record.ContentType,
		Prompt:       input.Prompt,
	})
	if err != nil {
		return record, common.NewGenerationFailedError(err)
	}
	if result.Value == "" {
		return record, common.NewGenerationFailedError(
			fmt.Errorf("aigen service trả về giá trị rỗng cho field %s", field))
	}

	updated, err := s.recordService.casUpdate(ctx, id, record.Version, &basesvc.UpdateData{
		Set: map[string]interface{}{
			field:                  result.Value,
			"metadata.aiGenerated": true,
		},
	})
	if err != nil {
		return updated, err
	}

	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"recordId": id.Hex(),
		"field":    field,
		"status":   updated.Status,
	}).Info("🤖 [CONTENT] Enhance field bằng AI thành công")
	return updated, nil
}
