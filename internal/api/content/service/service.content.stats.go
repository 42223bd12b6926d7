package contentsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	contentmodels "content_pilot/internal/api/content/models"
	"content_pilot/internal/common"
)

// ContentStatsFilter giới hạn phạm vi thống kê.
type ContentStatsFilter struct {
	ProjectID     *primitive.ObjectID
	Platform      string
	ScheduledFrom *int64
	ScheduledTo   *int64
}

// ContentStats là kết quả thống kê, luôn tính trực tiếp từ records tại thời
// điểm gọi. Không có counter lưu sẵn nào để bị lệch.
type ContentStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByPlatform map[string]int64 `json:"byPlatform"`
}

// CalendarDay gom các record của một ngày trong lịch.
type CalendarDay struct {
	DayNumber int                           `json:"dayNumber"`
	Records   []contentmodels.ContentRecord `json:"records"`
}

func (f *ContentStatsFilter) toMatch() bson.M {
	match := bson.M{}
	if f.ProjectID != nil {
		match["projectId"] = *f.ProjectID
	}
	if f.Platform != "" {
		match["platform"] = f.Platform
	}
	if f.ScheduledFrom != nil || f.ScheduledTo != nil {
		rangeFilter := bson.M{}
		if f.ScheduledFrom != nil {
			rangeFilter["$gte"] = *f.ScheduledFrom
		}
		if f.ScheduledTo != nil {
			rangeFilter["$lte"] = *f.ScheduledTo
		}
		// Record đã published lọc theo thời điểm đăng thật (có thể lệch so
		// với lịch), các trạng thái còn lại theo scheduledAt.
		match["$or"] = []bson.M{
			{"status": contentmodels.ContentStatusPublished, "publishedAt": rangeFilter},
			{"status": bson.M{"$ne": contentmodels.ContentStatusPublished}, "scheduledAt": rangeFilter},
		}
	}
	return match
}

// reportedStatus ánh xạ trạng thái lưu trữ sang trạng thái báo cáo.
// publishing là bước claim nội bộ của worker nên báo cáo như scheduled.
func reportedStatus(status string) string {
	if status == contentmodels.ContentStatusPublishing {
		return contentmodels.ContentStatusScheduled
	}
	return status
}

// GetStats đếm record theo status và platform trong phạm vi filter.
func (s *ContentRecordService) GetStats(ctx context.Context, filter *ContentStatsFilter) (*ContentStats, error) {
	if filter == nil {
		filter = &ContentStatsFilter{}
	}

	pipeline := []bson.M{
		{"$match": filter.toMatch()},
		{"$facet": bson.M{
			"byStatus": []bson.M{
				{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
			},
			"byPlatform": []bson.M{
				{"$group": bson.M{"_id": "$platform", "count": bson.M{"$sum": 1}}},
			},
		}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var facets []struct {
		ByStatus []struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		} `bson:"byStatus"`
		ByPlatform []struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		} `bson:"byPlatform"`
	}
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	stats := &ContentStats{
		ByStatus:   map[string]int64{},
		ByPlatform: map[string]int64{},
	}
	if len(facets) == 0 {
		return stats, nil
	}
	for _, group := range facets[0].ByStatus {
		stats.ByStatus[reportedStatus(group.ID)] += group.Count
		stats.Total += group.Count
	}
	for _, group := range facets[0].ByPlatform {
		stats.ByPlatform[group.ID] += group.Count
	}
	return stats, nil
}

// GetCalendar trả về record của một project gom theo dayNumber, sort theo
// (dayNumber, platform) để kết quả ổn định giữa các lần gọi.
func (s *ContentRecordService) GetCalendar(ctx context.Context, projectID primitive.ObjectID, filter *ContentStatsFilter) ([]CalendarDay, error) {
	if filter == nil {
		filter = &ContentStatsFilter{}
	}
	filter.ProjectID = &projectID

	opts := options.Find().SetSort(bson.D{
		{Key: "dayNumber", Value: 1},
		{Key: "platform", Value: 1},
	})
	records, err := s.Find(ctx, filter.toMatch(), opts)
	if err != nil {
		return nil, err
	}

	days := []CalendarDay{}
	for _, record := range records {
		record.Status = reportedStatus(record.Status)
		if len(days) == 0 || days[len(days)-1].DayNumber != record.DayNumber {
			days = append(days, CalendarDay{DayNumber: record.DayNumber})
		}
		days[len(days)-1].Records = append(days[len(days)-1].Records, record)
	}
	return days, nil
}
