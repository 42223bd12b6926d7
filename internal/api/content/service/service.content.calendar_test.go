// Package contentsvc - Test các hàm thuần của calendar/stats (không cần Mongo).
package contentsvc

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	contentmodels "content_pilot/internal/api/content/models"
)

func TestBuildCalendarRecords_DayNumberLienTuc(t *testing.T) {
	project := &contentmodels.ContentProject{
		ID:   primitive.NewObjectID(),
		Name: "Chiến dịch Tết",
	}
	platforms := []string{"instagram", "tiktok"}

	records := buildCalendarRecords(project, 8, 3, platforms, "reel")
	if len(records) != 6 {
		t.Fatalf("3 ngày x 2 platform phải ra 6 records, nhận %d", len(records))
	}

	// dayNumber nối tiếp từ startDay, mỗi ngày đủ mọi platform.
	wantDays := []int{8, 8, 9, 9, 10, 10}
	for i, r := range records {
		if r.DayNumber != wantDays[i] {
			t.Errorf("record %d có dayNumber %d, muốn %d", i, r.DayNumber, wantDays[i])
		}
		if r.Status != contentmodels.ContentStatusDraft {
			t.Errorf("record mới phải ở draft, nhận %s", r.Status)
		}
		if r.ContentType != "reel" {
			t.Errorf("record phải mang contentType reel, nhận %s", r.ContentType)
		}
		if r.ProjectID == nil || *r.ProjectID != project.ID {
			t.Error("record phải trỏ về đúng project")
		}
	}
	if records[0].Platform != "instagram" || records[1].Platform != "tiktok" {
		t.Errorf("mỗi ngày phải fan-out đủ platform theo thứ tự, nhận %s/%s",
			records[0].Platform, records[1].Platform)
	}
	if records[0].Title != "Chiến dịch Tết - Ngày 8" {
		t.Errorf("title mặc định sai: %s", records[0].Title)
	}
}

func TestBuildCalendarRecords_KhongPlatform(t *testing.T) {
	project := &contentmodels.ContentProject{ID: primitive.NewObjectID(), Name: "P"}
	records := buildCalendarRecords(project, 1, 5, nil, "post")
	if len(records) != 0 {
		t.Errorf("không có platform thì không sinh record, nhận %d", len(records))
	}
}

func TestReportedStatus_PublishingBaoCaoNhuScheduled(t *testing.T) {
	if got := reportedStatus(contentmodels.ContentStatusPublishing); got != contentmodels.ContentStatusScheduled {
		t.Errorf("publishing phải báo cáo là scheduled, nhận %s", got)
	}
	for _, s := range []string{"draft", "scheduled", "paused", "stopped", "published", "failed", "deleted"} {
		if got := reportedStatus(s); got != s {
			t.Errorf("reportedStatus(%s) = %s, phải giữ nguyên", s, got)
		}
	}
}

func TestContentStatsFilter_ToMatch(t *testing.T) {
	empty := (&ContentStatsFilter{}).toMatch()
	if len(empty) != 0 {
		t.Errorf("filter rỗng phải ra match rỗng, nhận %v", empty)
	}

	projectID := primitive.NewObjectID()
	from := int64(1000)
	to := int64(2000)
	match := (&ContentStatsFilter{
		ProjectID:     &projectID,
		Platform:      "youtube",
		ScheduledFrom: &from,
		ScheduledTo:   &to,
	}).toMatch()

	if match["projectId"] != projectID {
		t.Errorf("match thiếu projectId, nhận %v", match["projectId"])
	}
	if match["platform"] != "youtube" {
		t.Errorf("match thiếu platform, nhận %v", match["platform"])
	}

	// Khoảng thời gian tách theo trạng thái: published lọc theo publishedAt
	// (thời điểm đăng thật), các trạng thái còn lại theo scheduledAt.
	wantRange := bson.M{"$gte": from, "$lte": to}
	wantOr := []bson.M{
		{"status": contentmodels.ContentStatusPublished, "publishedAt": wantRange},
		{"status": bson.M{"$ne": contentmodels.ContentStatusPublished}, "scheduledAt": wantRange},
	}
	if !reflect.DeepEqual(match["$or"], wantOr) {
		t.Errorf("match $or = %v, muốn %v", match["$or"], wantOr)
	}
	if _, has := match["scheduledAt"]; has {
		t.Error("có khoảng thời gian thì không được lọc scheduledAt phẳng")
	}

	// Chỉ có from thì không được sinh $lte.
	fromOnly := (&ContentStatsFilter{ScheduledFrom: &from}).toMatch()
	branches, ok := fromOnly["$or"].([]bson.M)
	if !ok || len(branches) != 2 {
		t.Fatalf("$or phải có 2 nhánh, nhận %v", fromOnly["$or"])
	}
	gotRange, ok := branches[1]["scheduledAt"].(bson.M)
	if !ok {
		t.Fatalf("scheduledAt phải là bson.M, nhận %T", branches[1]["scheduledAt"])
	}
	if _, has := gotRange["$lte"]; has {
		t.Error("chỉ có from thì không được có $lte")
	}
}

func TestToStringSlice(t *testing.T) {
	if got := toStringSlice([]string{"a", "b"}); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("toStringSlice([]string) = %v", got)
	}
	// JSON decode ra []interface{}, phải coerce được.
	if got := toStringSlice([]interface{}{"x", "y"}); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("toStringSlice([]interface{}) = %v", got)
	}
	// Phần tử không phải string bị bỏ qua, không panic.
	if got := toStringSlice([]interface{}{"x", 42}); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("toStringSlice phải bỏ qua phần tử không phải string, nhận %v", got)
	}
	if got := toStringSlice("not-a-slice"); got != nil {
		t.Errorf("không phải slice thì phải trả về nil, nhận %v", got)
	}
}
