package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	contentsvc "content_pilot/internal/api/content/service"
	"content_pilot/internal/logger"
)

// InitDefaultData kiểm tra dữ liệu hiện có khi khởi động. Content domain
// không cần seed dữ liệu mặc định, chỉ log lại hiện trạng để vận hành.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	recordService, err := contentsvc.NewContentRecordService()
	if err != nil {
		log.Fatalf("Failed to initialize content record service: %v", err)
	}
	projectService, err := contentsvc.NewContentProjectService()
	if err != nil {
		log.Fatalf("Failed to initialize content project service: %v", err)
	}

	ctx := context.Background()
	recordCount, err := recordService.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.WithError(err).Warn("🔄 [INIT] Không đếm được content records")
	}
	projectCount, err := projectService.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.WithError(err).Warn("🔄 [INIT] Không đếm được content projects")
	}

	log.WithFields(map[string]interface{}{
		"contentRecords":  recordCount,
		"contentProjects": projectCount,
	}).Info("✅ [INIT] InitDefaultData completed")
}
