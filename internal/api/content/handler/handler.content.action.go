package contenthdl

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"content_pilot/internal/api/aigen"
	basehdl "content_pilot/internal/api/base/handler"
	"content_pilot/internal/api/content/dto"
	contentsvc "content_pilot/internal/api/content/service"
	"content_pilot/internal/common"
	"content_pilot/internal/logger"
)

// ContentActionHandler xử lý endpoint action dispatcher:
// POST /content/records/:id/actions/:action
//
// LÝ DO PHẢI TẠO ENDPOINT ĐẶC BIỆT (không thể dùng CRUD chuẩn):
//  1. Chuyển trạng thái phải đi qua bảng transition và CAS theo version,
//     update trực tiếp field status sẽ phá invariant của vòng đời.
//  2. Regenerate/recreate gọi AI collaborator trước rồi mới ghi kết quả,
//     AI lỗi thì record giữ nguyên trạng.
//  3. Lỗi nghiệp vụ (InvalidTransition, TerminalStateViolation, ...) phải
//     trả về nguyên văn từ service, không bị CRUD layer che mất.
type ContentActionHandler struct {
	actionService *contentsvc.ContentActionService
}

// NewContentActionHandler tạo mới ContentActionHandler
func NewContentActionHandler(generator aigen.Generator) (*ContentActionHandler, error) {
	actionService, err := contentsvc.NewContentActionService(generator)
	if err != nil {
		return nil, fmt.Errorf("failed to create content action service: %w", err)
	}
	return &ContentActionHandler{
		actionService: actionService,
	}, nil
}

// ContentActionRequest là body của action endpoint. Update chỉ dùng cho verb
// update, các trường còn lại dùng cho play/regenerate/recreate.
type ContentActionRequest struct {
	ScheduledAt     *int64                        `json:"scheduledAt,omitempty"`
	Prompt          string                        `json:"prompt,omitempty" validate:"omitempty,max=5000"`
	ExpectedVersion *int64                        `json:"expectedVersion,omitempty"`
	Update          *dto.ContentRecordUpdateInput `json:"update,omitempty"`
}

// HandleAction parse id + action từ URL và định tuyến qua dispatcher.
func (h *ContentActionHandler) HandleAction(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		idStr := c.Params("id")
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
				"code":    common.ErrCodeValidationFormat.Code,
				"message": fmt.Sprintf("ID không đúng định dạng ObjectID: %s", idStr),
				"status":  "error",
			})
		}

		action := c.Params("action")

		var req ContentActionRequest
		if len(c.Body()) > 0 {
			if err := c.Bind().Body(&req); err != nil {
				return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
					"code":    common.ErrCodeValidationFormat.Code,
					"message": fmt.Sprintf("Body không đúng định dạng JSON: %v", err),
					"status":  "error",
				})
			}
		}

		actionInput := &dto.ContentActionInput{
			ScheduledAt:     req.ScheduledAt,
			Prompt:          req.Prompt,
			ExpectedVersion: req.ExpectedVersion,
		}

		record, err := h.actionService.Dispatch(c.Context(), id, action, actionInput, req.Update)
		if err != nil {
			logger.GetAppLogger().WithError(err).WithFields(map[string]interface{}{
				"recordId": idStr,
				"action":   action,
			}).Warn("⚙️ [CONTENT_ACTION] Action bị từ chối")
			return handleActionError(c, err)
		}

		logger.LogCRUD("action:"+action, "content_record", idStr, c, nil)
		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
			"code":    common.StatusOK,
			"message": common.MsgSuccess,
			"data":    record,
			"status":  "success",
		})
	})
}

// HandleEnhanceField xử lý POST /content/records/:id/enhance/:field — cải
// thiện một field đơn lẻ bằng AI, record giữ nguyên khi AI lỗi.
func (h *ContentActionHandler) HandleEnhanceField(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		idStr := c.Params("id")
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
				"code":    common.ErrCodeValidationFormat.Code,
				"message": fmt.Sprintf("ID không đúng định dạng ObjectID: %s", idStr),
				"status":  "error",
			})
		}

		field := c.Params("field")

		var req ContentActionRequest
		if len(c.Body()) > 0 {
			if err := c.Bind().Body(&req); err != nil {
				return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
					"code":    common.ErrCodeValidationFormat.Code,
					"message": fmt.Sprintf("Body không đúng định dạng JSON: %v", err),
					"status":  "error",
				})
			}
		}

		record, err := h.actionService.EnhanceField(c.Context(), id, field, &dto.ContentActionInput{
			Prompt:          req.Prompt,
			ExpectedVersion: req.ExpectedVersion,
		})
		if err != nil {
			logger.GetAppLogger().WithError(err).WithFields(map[string]interface{}{
				"recordId": idStr,
				"field":    field,
			}).Warn("⚙️ [CONTENT_ACTION] Enhance field bị từ chối")
			return handleActionError(c, err)
		}

		logger.LogCRUD("enhance:"+field, "content_record", idStr, c, nil)
		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
			"code":    common.StatusOK,
			"message": common.MsgSuccess,
			"data":    record,
			"status":  "success",
		})
	})
}

// handleActionError trả lỗi service về client nguyên văn, giữ status code
// và details của *common.Error.
func handleActionError(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return basehdl.JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": customErr.Details,
			"status":  "error",
		})
	}
	return basehdl.JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": err.Error(),
		"status":  "error",
	})
}
