package contenthdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "content_pilot/internal/api/base/handler"
	"content_pilot/internal/api/content/dto"
	contentmodels "content_pilot/internal/api/content/models"
	contentsvc "content_pilot/internal/api/content/service"
	"content_pilot/internal/common"
	"content_pilot/internal/logger"
)

// ContentProjectHandler xử lý CRUD cho content projects và extend calendar.
type ContentProjectHandler struct {
	basehdl.BaseHandler[contentmodels.ContentProject, dto.ContentProjectCreateInput, dto.ContentProjectUpdateInput]
	projectService *contentsvc.ContentProjectService
}

// NewContentProjectHandler tạo mới ContentProjectHandler
func NewContentProjectHandler() (*ContentProjectHandler, error) {
	projectService, err := contentsvc.NewContentProjectService()
	if err != nil {
		return nil, fmt.Errorf("failed to create content project service: %w", err)
	}
	return &ContentProjectHandler{
		BaseHandler:    *basehdl.NewBaseHandler[contentmodels.ContentProject, dto.ContentProjectCreateInput, dto.ContentProjectUpdateInput](projectService),
		projectService: projectService,
	}, nil
}

// HandleExtendCalendar kéo dài lịch của project thêm N ngày:
// POST /content/projects/:id/extend-calendar
func (h *ContentProjectHandler) HandleExtendCalendar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		idStr := h.GetIDFromContext(c)
		projectID, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				fmt.Sprintf("ID không đúng định dạng ObjectID: %s", idStr),
				common.StatusBadRequest, nil))
			return nil
		}

		var input dto.ExtendCalendarInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
				common.StatusBadRequest, err))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		created, err := h.projectService.ExtendCalendar(c.Context(), projectID, &input)
		if err == nil {
			logger.LogCRUD("extend-calendar", "content_project", idStr, c, map[string]interface{}{
				"days":    input.Days,
				"records": len(created),
			})
		}
		h.HandleResponse(c, created, err)
		return nil
	})
}
