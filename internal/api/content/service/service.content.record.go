package contentsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "content_pilot/internal/api/base/service"
	"content_pilot/internal/api/content/dto"
	contentmodels "content_pilot/internal/api/content/models"
	"content_pilot/internal/common"
	"content_pilot/internal/global"
)

// ContentRecordService là service quản lý content records và vòng đời của chúng.
// Mọi thay đổi ghi đều đi qua CAS trên version để chống ghi đè lẫn nhau.
type ContentRecordService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.ContentRecord]
}

// NewContentRecordService tạo mới ContentRecordService
func NewContentRecordService() (*ContentRecordService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ContentRecords)
	if !exist {
		return nil, fmt.Errorf("failed to get content_records collection: %v", common.ErrNotFound)
	}
	return &ContentRecordService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.ContentRecord](collection),
	}, nil
}

// normalizeNewRecord validate enum và ép các trường hệ thống của một record
// sắp insert về trạng thái khởi tạo. Record mới luôn là draft, client không
// tự chọn trạng thái hay các trường do worker quản lý.
func normalizeNewRecord(data contentmodels.ContentRecord) (contentmodels.ContentRecord, error) {
	if !contentmodels.IsValidPlatform(data.Platform) {
		return data, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Platform '%s' không được hỗ trợ", data.Platform),
			common.StatusBadRequest, nil)
	}
	if !contentmodels.IsValidContentType(data.ContentType) {
		return data, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Content type '%s' không hợp lệ", data.ContentType),
			common.StatusBadRequest, nil)
	}

	data.Status = contentmodels.ContentStatusDraft
	data.Hashtags = contentmodels.NormalizeHashtags(data.Hashtags)
	data.PublishedAt = nil
	data.PlatformPostID = ""
	data.FailureReason = ""
	data.Metadata.AIGenerated = false
	return data, nil
}

// checkSlotFree kiểm tra slot (projectId, dayNumber, platform) còn trống.
// Unique index chặn race, check trước để trả lỗi dễ đọc hơn duplicate key.
func (s *ContentRecordService) checkSlotFree(ctx context.Context, data *contentmodels.ContentRecord) error {
	if data.ProjectID == nil {
		return nil
	}
	exists, err := s.DocumentExists(ctx, bson.M{
		"projectId": *data.ProjectID,
		"dayNumber": data.DayNumber,
		"platform":  data.Platform,
	})
	if err != nil {
		return err
	}
	if exists {
		return common.NewError(common.ErrCodeDatabaseQuery,
			fmt.Sprintf("Project đã có record cho ngày %d trên platform %s", data.DayNumber, data.Platform),
			common.StatusConflict, map[string]interface{}{
				"projectId": data.ProjectID.Hex(),
				"dayNumber": data.DayNumber,
				"platform":  data.Platform,
			})
	}
	return nil
}

// InsertOne override để validate enum, chuẩn hóa hashtags và ép trạng thái
// khởi tạo. Mỗi (projectId, dayNumber, platform) chỉ có một record.
func (s *ContentRecordService) InsertOne(ctx context.Context, data contentmodels.ContentRecord) (contentmodels.ContentRecord, error) {
	normalized, err := normalizeNewRecord(data)
	if err != nil {
		return data, err
	}
	if err := s.checkSlotFree(ctx, &normalized); err != nil {
		return normalized, err
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, normalized)
}

// InsertMany override để đường batch (extend calendar, insert-many generic)
// đi qua cùng validate và chuẩn hóa như InsertOne, không lọt record thô.
func (s *ContentRecordService) InsertMany(ctx context.Context, data []contentmodels.ContentRecord) ([]contentmodels.ContentRecord, error) {
	for i := range data {
		normalized, err := normalizeNewRecord(data[i])
		if err != nil {
			return nil, err
		}
		if err := s.checkSlotFree(ctx, &normalized); err != nil {
			return nil, err
		}
		data[i] = normalized
	}
	return s.BaseServiceMongoImpl.InsertMany(ctx, data)
}

// casUpdate áp một update lên record với điều kiện version không đổi kể từ
// lần đọc trước đó. Update luôn kèm $inc version. Trả về ConcurrentModification
// khi filter không match nữa (record đã bị request khác ghi đè hoặc xóa).
func (s *ContentRecordService) casUpdate(ctx context.Context, id primitive.ObjectID, version int64, update *basesvc.UpdateData) (contentmodels.ContentRecord, error) {
	if update.Inc == nil {
		update.Inc = map[string]interface{}{}
	}
	update.Inc["version"] = int64(1)

	updated, err := s.FindOneAndUpdate(ctx, bson.M{"_id": id, "version": version}, update, nil)
	if err == common.ErrNotFound {
		return updated, common.ErrConcurrentModification
	}
	return updated, err
}

// loadForAction đọc record và đối chiếu expectedVersion của client (nếu có).
func (s *ContentRecordService) loadForAction(ctx context.Context, id primitive.ObjectID, expectedVersion *int64) (contentmodels.ContentRecord, error) {
	record, err := s.FindOneById(ctx, id)
	if err != nil {
		return record, err
	}
	if expectedVersion != nil && *expectedVersion != record.Version {
		return record, common.ErrConcurrentModification
	}
	return record, nil
}

// checkEditable chặn edit trên record không còn cho sửa nội dung. Record đã
// deleted trả về TerminalStateViolation; các trạng thái không sửa được còn
// lại, kể cả published, trả về ImmutableStateViolation.
func checkEditable(status string, action string) error {
	if status == contentmodels.ContentStatusDeleted {
		return common.NewTerminalStateError(status, action)
	}
	if !contentmodels.IsEditableStatus(status) {
		return common.NewImmutableStateError(status, action)
	}
	return nil
}

// UpdateById override để mọi đường update generic cũng đi qua edit gating:
// chỉ các trường nội dung được ghi, và chỉ khi record ở trạng thái cho sửa.
func (s *ContentRecordService) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (contentmodels.ContentRecord, error) {
	record, err := s.FindOneById(ctx, id)
	if err != nil {
		return record, err
	}
	if err := checkEditable(record.Status, contentmodels.ContentActionUpdate); err != nil {
		return record, err
	}

	updateData, err := basesvc.ToUpdateData(data)
	if err != nil {
		return record, err
	}

	set := map[string]interface{}{}
	for field, value := range updateData.Set {
		switch field {
		case "title", "description", "scheduledAt":
			set[field] = value
		case "hashtags":
			set[field] = contentmodels.NormalizeHashtags(toStringSlice(value))
		}
	}
	if len(set) == 0 {
		return record, common.ErrInvalidInput
	}

	return s.casUpdate(ctx, id, record.Version, &basesvc.UpdateData{Set: set})
}

// toStringSlice ép một giá trị từ update payload về []string.
// ToMap có thể trả về []string hoặc []interface{} tùy đường parse.
func toStringSlice(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// UpdateContent sửa các trường nội dung của record (title, description,
// hashtags, scheduledAt). Chỉ cho phép khi record ở trạng thái cho sửa,
// ngược lại trả về ImmutableStateViolation (hoặc TerminalStateViolation
// nếu record đã deleted).
func (s *ContentRecordService) UpdateContent(ctx context.Context, id primitive.ObjectID, input *dto.ContentRecordUpdateInput, expectedVersion *int64) (contentmodels.ContentRecord, error) {
	record, err := s.loadForAction(ctx, id, expectedVersion)
	if err != nil {
		return record, err
	}

	if err := checkEditable(record.Status, contentmodels.ContentActionUpdate); err != nil {
		return record, err
	}

	set := map[string]interface{}{}
	if input.Title != "" {
		set["title"] = input.Title
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Hashtags != nil {
		set["hashtags"] = contentmodels.NormalizeHashtags(input.Hashtags)
	}
	if input.ScheduledAt != nil {
		set["scheduledAt"] = *input.ScheduledAt
	}
	if len(set) == 0 {
		return record, common.ErrInvalidInput
	}

	return s.casUpdate(ctx, id, record.Version, &basesvc.UpdateData{Set: set})
}
