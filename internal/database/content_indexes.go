// Package database - Index bổ sung cho content domain (compound theo truy vấn) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"content_pilot/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateContentAdditionalIndexes tạo các index bổ sung cho content domain.
// Gọi sau CreateIndexes cho từng collection content.
func CreateContentAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	contentRecords := db.Collection(global.MongoDB_ColNames.ContentRecords)

	// content_records: (status, scheduledAt) — scan record đến hạn của publish worker
	if _, err := contentRecords.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "scheduledAt", Value: 1},
		},
		Options: options.Index().SetName("content_record_status_scheduled"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// content_records: (projectId, status) — stats và projection theo project
	if _, err := contentRecords.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "projectId", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("content_record_project_status").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// content_records: (projectId, dayNumber) — calendar groupings
	if _, err := contentRecords.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "projectId", Value: 1},
			{Key: "dayNumber", Value: 1},
		},
		Options: options.Index().SetName("content_record_project_day").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
