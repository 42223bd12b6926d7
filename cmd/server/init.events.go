package main

import (
	"context"

	"content_pilot/internal/api/events"
	"content_pilot/internal/logger"
)

// InitEventHandlers đăng ký các handler phản ứng với data change events
// do base service phát ra khi CRUD.
func InitEventHandlers() {
	// Audit log mọi thay đổi dữ liệu qua CRUD
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		logger.GetAuditLogger().WithFields(map[string]interface{}{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		}).Debug("Data changed")
	})
}
