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
	"content_pilot/internal/utility"
)

// ContentRecordHandler xử lý các route CRUD và query cho content records.
// Mọi thao tác đổi trạng thái đi qua ContentActionHandler, không qua đây.
type ContentRecordHandler struct {
	basehdl.BaseHandler[contentmodels.ContentRecord, dto.ContentRecordCreateInput, dto.ContentRecordUpdateInput]
	recordService *contentsvc.ContentRecordService
}

// NewContentRecordHandler tạo mới ContentRecordHandler
func NewContentRecordHandler() (*ContentRecordHandler, error) {
	recordService, err := contentsvc.NewContentRecordService()
	if err != nil {
		return nil, fmt.Errorf("failed to create content record service: %w", err)
	}

	h := &ContentRecordHandler{
		BaseHandler: *basehdl.NewBaseHandler[contentmodels.ContentRecord, dto.ContentRecordCreateInput, dto.ContentRecordUpdateInput](recordService),
		recordService: recordService,
	}
	h.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"version"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return h, nil
}

// parseStatsFilter đọc filter thống kê từ query params: projectId, platform,
// from, to (timestamp milliseconds trên scheduledAt).
func parseStatsFilter(c fiber.Ctx) (*contentsvc.ContentStatsFilter, error) {
	filter := &contentsvc.ContentStatsFilter{}

	if projectIDStr := c.Query("projectId"); projectIDStr != "" {
		projectID, err := primitive.ObjectIDFromHex(projectIDStr)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat,
				fmt.Sprintf("projectId không đúng định dạng ObjectID: %s", projectIDStr),
				common.StatusBadRequest, nil)
		}
		filter.ProjectID = &projectID
	}
	if platform := c.Query("platform"); platform != "" {
		if !contentmodels.IsValidPlatform(platform) {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Platform '%s' không được hỗ trợ", platform),
				common.StatusBadRequest, nil)
		}
		filter.Platform = platform
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from := utility.P2Int64(fromStr)
		filter.ScheduledFrom = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to := utility.P2Int64(toStr)
		filter.ScheduledTo = &to
	}
	return filter, nil
}

// HandleStats trả về thống kê record theo status và platform.
// Số liệu tính trực tiếp từ records mỗi lần gọi.
func (h *ContentRecordHandler) HandleStats(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := parseStatsFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		stats, err := h.recordService.GetStats(c.Context(), filter)
		h.HandleResponse(c, stats, err)
		return nil
	})
}

// HandleCalendar trả về record của một project gom theo dayNumber.
func (h *ContentRecordHandler) HandleCalendar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		projectIDStr := h.GetIDFromContext(c)
		projectID, err := primitive.ObjectIDFromHex(projectIDStr)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				fmt.Sprintf("ID không đúng định dạng ObjectID: %s", projectIDStr),
				common.StatusBadRequest, nil))
			return nil
		}

		filter, err := parseStatsFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		days, err := h.recordService.GetCalendar(c.Context(), projectID, filter)
		h.HandleResponse(c, days, err)
		return nil
	})
}
