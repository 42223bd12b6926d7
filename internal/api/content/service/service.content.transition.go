package contentsvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "content_pilot/internal/api/base/service"
	contentmodels "content_pilot/internal/api/content/models"
	"content_pilot/internal/common"
	"content_pilot/internal/logger"
)

// planTransition kiểm tra một chuyển trạng thái do user khởi tạo theo bảng
// StatusTransitions và dựng update tương ứng. Hàm thuần, không chạm DB:
// nhận record đã load và thời điểm hiện tại, trả về trạng thái đích cùng
// UpdateData để caller CAS xuống Mongo.
func planTransition(record *contentmodels.ContentRecord, action string, scheduledAt *int64, now int64) (string, *basesvc.UpdateData, error) {
	if contentmodels.IsTerminalStatus(record.Status) {
		return "", nil, common.NewTerminalStateError(record.Status, action)
	}

	target, ok := contentmodels.StatusTransitions[record.Status][action]
	if !ok {
		return "", nil, common.NewInvalidTransitionError(record.Status, action,
			contentmodels.AllowedActions(record.Status), "")
	}

	set := map[string]interface{}{"status": target}

	// Precondition khi đích là scheduled: phải có lịch đăng, và khi resume
	// từ paused thì lịch đó phải còn ở tương lai. scheduledAt trong payload
	// chỉ có tác dụng khi lên lịch; pause/stop/delete không đổi lịch.
	if target == contentmodels.ContentStatusScheduled {
		effective := record.ScheduledAt
		if scheduledAt != nil {
			effective = scheduledAt
			set["scheduledAt"] = *scheduledAt
		}
		if effective == nil {
			return "", nil, common.NewInvalidTransitionError(record.Status, action,
				contentmodels.AllowedActions(record.Status),
				"cần có scheduledAt trước khi lên lịch")
		}
		if record.Status == contentmodels.ContentStatusPaused && *effective <= now {
			return "", nil, common.NewInvalidTransitionError(record.Status, action,
				contentmodels.AllowedActions(record.Status),
				"scheduledAt đã ở quá khứ, cần cung cấp lịch mới khi resume")
		}
	}

	// Retry từ failed: xóa lý do thất bại của lần trước.
	update := &basesvc.UpdateData{Set: set}
	if record.Status == contentmodels.ContentStatusFailed && target == contentmodels.ContentStatusScheduled {
		update.Unset = map[string]interface{}{"failureReason": ""}
	}
	return target, update, nil
}

// ApplyTransition thực hiện một chuyển trạng thái do user khởi tạo theo bảng
// StatusTransitions. scheduledAt (nếu có) chỉ áp dụng khi lên lịch, dùng cho
// play từ draft chưa có lịch hoặc resume record có lịch đã quá hạn.
func (s *ContentRecordService) ApplyTransition(ctx context.Context, id primitive.ObjectID, action string, scheduledAt *int64, expectedVersion *int64) (contentmodels.ContentRecord, error) {
	record, err := s.loadForAction(ctx, id, expectedVersion)
	if err != nil {
		return record, err
	}

	target, update, err := planTransition(&record, action, scheduledAt, time.Now().UnixMilli())
	if err != nil {
		return record, err
	}

	updated, err := s.casUpdate(ctx, id, record.Version, update)
	if err != nil {
		return updated, err
	}

	logger.LogTransition(id.Hex(), record.Status, target, action)
	return updated, nil
}
