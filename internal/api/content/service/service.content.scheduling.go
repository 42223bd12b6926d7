package contentsvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "content_pilot/internal/api/base/service"
	contentmodels "content_pilot/internal/api/content/models"
	"content_pilot/internal/common"
	"content_pilot/internal/logger"
)

// FindDueRecords trả về các record scheduled đã đến hạn đăng, cũ nhất trước.
func (s *ContentRecordService) FindDueRecords(ctx context.Context, now int64, limit int64) ([]contentmodels.ContentRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduledAt", Value: 1}}).
		SetLimit(limit)
	return s.Find(ctx, bson.M{
		"status":      contentmodels.ContentStatusScheduled,
		"scheduledAt": bson.M{"$lte": now},
	}, opts)
}

// staleClaimFilter match các record kẹt ở publishing từ trước cutoff:
// worker claim xong rồi chết trước khi kịp chốt published/failed.
// Chỉ đụng publishing, các trạng thái khác không bao giờ bị sweep.
func staleClaimFilter(cutoff int64) bson.M {
	return bson.M{
		"status":    contentmodels.ContentStatusPublishing,
		"updatedAt": bson.M{"$lt": cutoff},
	}
}

// RecoverStaleClaims chuyển các claim mồ côi sang failed để user thấy và
// chủ động retry. cutoff tính theo updatedAt, là thời điểm claim gần nhất.
func (s *ContentRecordService) RecoverStaleClaims(ctx context.Context, cutoff int64) (int64, error) {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":        contentmodels.ContentStatusFailed,
			"failureReason": "publish bị gián đoạn, không nhận được kết quả từ platform",
		},
		Inc: map[string]interface{}{"version": int64(1)},
	}
	count, err := s.UpdateMany(ctx, staleClaimFilter(cutoff), update, nil)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.GetAppLogger().WithFields(map[string]interface{}{
			"recovered": count,
			"cutoff":    cutoff,
		}).Warn("📤 [PUBLISHER] Thu hồi claim publishing mồ côi, chuyển sang failed")
	}
	return count, nil
}

// ClaimForPublishing chuyển record từ scheduled sang publishing bằng CAS trên
// status. Nhiều scanner chạy song song thì chỉ một bên claim được; bên thua
// nhận ErrConcurrentModification và bỏ qua record.
func (s *ContentRecordService) ClaimForPublishing(ctx context.Context, id primitive.ObjectID) (contentmodels.ContentRecord, error) {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"status": contentmodels.ContentStatusPublishing},
		Inc: map[string]interface{}{"version": int64(1)},
	}
	claimed, err := s.FindOneAndUpdate(ctx, bson.M{
		"_id":    id,
		"status": contentmodels.ContentStatusScheduled,
	}, update, nil)
	if err == common.ErrNotFound {
		return claimed, common.ErrConcurrentModification
	}
	return claimed, err
}

// MarkPublished chốt record đã đăng thành công: status published, publishedAt
// là thời điểm đăng xong. published là terminal, record không quay lại nữa.
func (s *ContentRecordService) MarkPublished(ctx context.Context, id primitive.ObjectID, platformPostID string) (contentmodels.ContentRecord, error) {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":      contentmodels.ContentStatusPublished,
			"publishedAt": time.Now().UnixMilli(),
		},
		Unset: map[string]interface{}{"failureReason": ""},
		Inc:   map[string]interface{}{"version": int64(1)},
	}
	if platformPostID != "" {
		update.Set["platformPostId"] = platformPostID
	}
	updated, err := s.FindOneAndUpdate(ctx, bson.M{
		"_id":    id,
		"status": contentmodels.ContentStatusPublishing,
	}, update, nil)
	if err != nil {
		return updated, err
	}
	logger.LogTransition(id.Hex(), contentmodels.ContentStatusScheduled, contentmodels.ContentStatusPublished, "publish")
	return updated, nil
}

// MarkFailed ghi nhận publish thất bại kèm lý do. Không tự retry; record chờ
// user chủ động play lại.
func (s *ContentRecordService) MarkFailed(ctx context.Context, id primitive.ObjectID, reason string) (contentmodels.ContentRecord, error) {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":        contentmodels.ContentStatusFailed,
			"failureReason": reason,
		},
		Inc: map[string]interface{}{"version": int64(1)},
	}
	updated, err := s.FindOneAndUpdate(ctx, bson.M{
		"_id":    id,
		"status": contentmodels.ContentStatusPublishing,
	}, update, nil)
	if err != nil {
		return updated, err
	}
	logger.LogTransition(id.Hex(), contentmodels.ContentStatusScheduled, contentmodels.ContentStatusFailed, "publish")
	return updated, nil
}
