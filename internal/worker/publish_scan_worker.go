package worker

import (
	"context"
	"time"

	contentmodels "content_pilot/internal/api/content/models"
	contentsvc "content_pilot/internal/api/content/service"
	"content_pilot/internal/api/publisher"
	"content_pilot/internal/logger"
)

// PublishScanWorker là scheduling trigger: định kỳ scan các record scheduled
// đã đến hạn, claim từng record rồi đăng lên platform. Claim bằng CAS
// scheduled -> publishing nên nhiều instance chạy song song vẫn không đăng
// trùng một record. Publish thất bại thì record sang failed và nằm đó chờ
// user retry, worker không tự đăng lại.
type PublishScanWorker struct {
	recordService *contentsvc.ContentRecordService
	pub           publisher.Publisher
	interval      time.Duration // Chu kỳ scan
	batchSize     int64         // Số record tối đa mỗi lần scan
	timeout       time.Duration // Deadline mỗi lần publish
}

// NewPublishScanWorker tạo mới PublishScanWorker.
// Tham số:
//   - pub: Publisher collaborator đăng bài lên platform
//   - interval: Chu kỳ scan (mặc định: 30 giây)
//   - batchSize: Số record tối đa mỗi lần scan (mặc định: 20)
//   - timeout: Deadline mỗi lần publish (mặc định: 30 giây)
func NewPublishScanWorker(pub publisher.Publisher, interval time.Duration, batchSize int64, timeout time.Duration) (*PublishScanWorker, error) {
	recordService, err := contentsvc.NewContentRecordService()
	if err != nil {
		return nil, err
	}
	if interval < time.Second {
		interval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 20
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PublishScanWorker{
		recordService: recordService,
		pub:           pub,
		interval:      interval,
		batchSize:     batchSize,
		timeout:       timeout,
	}, nil
}

// staleClaimCutoff tính mốc updatedAt để coi một claim publishing là mồ côi.
// Để dư 3 lần publish timeout cho chắc claim không còn worker nào giữ.
func staleClaimCutoff(now time.Time, timeout time.Duration) int64 {
	return now.Add(-3 * timeout).UnixMilli()
}

// Start chạy worker trong vòng lặp: mỗi interval scan một batch record đến
// hạn và xử lý tuần tự từng record.
func (w *PublishScanWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"batchSize": w.batchSize,
		"timeout":   w.timeout.String(),
	}).Info("🚀 [PUBLISH_SCAN] Starting Publish Scan Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🚀 [PUBLISH_SCAN] Publish Scan Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🚀 [PUBLISH_SCAN] Panic khi scan records, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()
				w.scanOnce(ctx)
			}()
		}
	}
}

// scanOnce xử lý một chu kỳ scan.
func (w *PublishScanWorker) scanOnce(ctx context.Context) {
	log := logger.GetAppLogger()

	// Claim từ lần chạy trước mà không có kết quả (worker crash giữa chừng)
	// chuyển về failed trước khi scan, không thì record kẹt ở publishing mãi.
	if _, err := w.recordService.RecoverStaleClaims(ctx, staleClaimCutoff(time.Now(), w.timeout)); err != nil {
		log.WithError(err).Error("🚀 [PUBLISH_SCAN] Lỗi thu hồi claim mồ côi")
	}

	due, err := w.recordService.FindDueRecords(ctx, time.Now().UnixMilli(), w.batchSize)
	if err != nil {
		log.WithError(err).Error("🚀 [PUBLISH_SCAN] Lỗi lấy danh sách record đến hạn")
		return
	}
	if len(due) == 0 {
		return
	}

	published, failed, skipped := 0, 0, 0
	for _, record := range due {
		claimed, err := w.recordService.ClaimForPublishing(ctx, record.ID)
		if err != nil {
			// Scanner khác đã claim hoặc record vừa đổi trạng thái.
			skipped++
			continue
		}

		if w.publishOne(ctx, &claimed) {
			published++
		} else {
			failed++
		}
	}

	log.WithFields(map[string]interface{}{
		"due":       len(due),
		"published": published,
		"failed":    failed,
		"skipped":   skipped,
	}).Info("🚀 [PUBLISH_SCAN] Hoàn thành chu kỳ scan")
}

// publishOne đăng một record đã claim, trả về true nếu thành công.
func (w *PublishScanWorker) publishOne(ctx context.Context, record *contentmodels.ContentRecord) bool {
	log := logger.GetAppLogger()

	pubCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	result, err := w.pub.Publish(pubCtx, &publisher.PublishRequest{
		Platform:    record.Platform,
		ContentType: record.ContentType,
		Title:       record.Title,
		Description: record.Description,
		Hashtags:    record.Hashtags,
	})
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"recordId": record.ID.Hex(),
			"platform": record.Platform,
		}).Error("🚀 [PUBLISH_SCAN] Publish thất bại")
		if _, markErr := w.recordService.MarkFailed(ctx, record.ID, err.Error()); markErr != nil {
			log.WithError(markErr).WithFields(map[string]interface{}{
				"recordId": record.ID.Hex(),
			}).Error("🚀 [PUBLISH_SCAN] Không ghi nhận được trạng thái failed")
		}
		return false
	}

	if _, err := w.recordService.MarkPublished(ctx, record.ID, result.PlatformPostID); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"recordId": record.ID.Hex(),
		}).Error("🚀 [PUBLISH_SCAN] Không ghi nhận được trạng thái published")
		return false
	}
	return true
}
