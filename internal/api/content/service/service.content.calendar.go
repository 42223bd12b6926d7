package contentsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "content_pilot/internal/api/base/service"
	"content_pilot/internal/api/content/dto"
	contentmodels "content_pilot/internal/api/content/models"
	"content_pilot/internal/common"
	"content_pilot/internal/global"
	"content_pilot/internal/logger"
)

// ContentProjectService quản lý content projects và lịch đăng của chúng.
type ContentProjectService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.ContentProject]
	recordService *ContentRecordService
}

// NewContentProjectService tạo mới ContentProjectService
func NewContentProjectService() (*ContentProjectService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ContentProjects)
	if !exist {
		return nil, fmt.Errorf("failed to get content_projects collection: %v", common.ErrNotFound)
	}
	recordService, err := NewContentRecordService()
	if err != nil {
		return nil, fmt.Errorf("failed to create content record service: %v", err)
	}
	return &ContentProjectService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.ContentProject](collection),
		recordService:        recordService,
	}, nil
}

// buildCalendarRecords dựng các draft record cho đoạn lịch mới: mỗi ngày một
// record trên mỗi platform, dayNumber nối tiếp liên tục từ startDay.
func buildCalendarRecords(project *contentmodels.ContentProject, startDay int, days int, platforms []string, contentType string) []contentmodels.ContentRecord {
	records := make([]contentmodels.ContentRecord, 0, days*len(platforms))
	for offset := 0; offset < days; offset++ {
		day := startDay + offset
		for _, platform := range platforms {
			records = append(records, contentmodels.ContentRecord{
				ProjectID:   &project.ID,
				DayNumber:   day,
				Title:       fmt.Sprintf("%s - Ngày %d", project.Name, day),
				Platform:    platform,
				ContentType: contentType,
				Status:      contentmodels.ContentStatusDraft,
			})
		}
	}
	return records
}

// maxDayNumber trả về dayNumber lớn nhất hiện có của project, 0 nếu chưa có record.
func (s *ContentProjectService) maxDayNumber(ctx context.Context, projectID primitive.ObjectID) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "dayNumber", Value: -1}})
	last, err := s.recordService.FindOne(ctx, bson.M{"projectId": projectID}, opts)
	if err == common.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.DayNumber, nil
}

// ExtendCalendar kéo dài lịch của project thêm đúng N ngày. Các ngày mới có
// dayNumber nối tiếp từ ngày lớn nhất hiện có, mỗi ngày một draft trên mỗi
// platform của project.
func (s *ContentProjectService) ExtendCalendar(ctx context.Context, projectID primitive.ObjectID, input *dto.ExtendCalendarInput) ([]contentmodels.ContentRecord, error) {
	project, err := s.FindOneById(ctx, projectID)
	if err != nil {
		return nil, err
	}

	platforms := input.Platforms
	if len(platforms) == 0 {
		platforms = project.Platforms
	}
	if len(platforms) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput,
			"Project chưa khai báo platform nào, cần chỉ định platforms khi extend",
			common.StatusBadRequest, nil)
	}
	for _, platform := range platforms {
		if !contentmodels.IsValidPlatform(platform) {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Platform '%s' không được hỗ trợ", platform),
				common.StatusBadRequest, nil)
		}
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = contentmodels.ContentTypePost
	}
	if !contentmodels.IsValidContentType(contentType) {
		return nil, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Content type '%s' không hợp lệ", contentType),
			common.StatusBadRequest, nil)
	}

	maxDay, err := s.maxDayNumber(ctx, projectID)
	if err != nil {
		return nil, err
	}

	records := buildCalendarRecords(&project, maxDay+1, input.Days, platforms, contentType)
	created, err := s.recordService.InsertMany(ctx, records)
	if err != nil {
		return nil, err
	}

	if _, err := s.UpdateById(ctx, projectID, &basesvc.UpdateData{
		Set: map[string]interface{}{"totalDays": maxDay + input.Days},
	}); err != nil {
		return nil, err
	}

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"projectId": projectID.Hex(),
		"days":      input.Days,
		"fromDay":   maxDay + 1,
		"records":   len(created),
	}).Info("📅 [CONTENT] Extend calendar thành công")
	return created, nil
}
