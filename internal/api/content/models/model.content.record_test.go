// Package models - Test bảng chuyển trạng thái và các helper của content record.
package models

import (
	"reflect"
	"sort"
	"testing"
)

func TestStatusTransitions_DungTheoVongDoi(t *testing.T) {
	cases := []struct {
		from   string
		action string
		want   string
	}{
		{ContentStatusDraft, ContentActionPlay, ContentStatusScheduled},
		{ContentStatusDraft, ContentActionDelete, ContentStatusDeleted},
		{ContentStatusScheduled, ContentActionPause, ContentStatusPaused},
		{ContentStatusScheduled, ContentActionStop, ContentStatusStopped},
		{ContentStatusPaused, ContentActionPlay, ContentStatusScheduled},
		{ContentStatusPaused, ContentActionStop, ContentStatusStopped},
		{ContentStatusPaused, ContentActionDelete, ContentStatusDeleted},
		{ContentStatusStopped, ContentActionDelete, ContentStatusDeleted},
		{ContentStatusFailed, ContentActionPlay, ContentStatusScheduled},
		{ContentStatusFailed, ContentActionDelete, ContentStatusDeleted},
	}
	for _, tc := range cases {
		got, ok := StatusTransitions[tc.from][tc.action]
		if !ok {
			t.Errorf("thiếu transition %s + %s", tc.from, tc.action)
			continue
		}
		if got != tc.want {
			t.Errorf("%s + %s = %s, muốn %s", tc.from, tc.action, got, tc.want)
		}
	}
}

func TestStatusTransitions_KhongChoPhepTransitionNgoaiBang(t *testing.T) {
	// scheduled không được delete trực tiếp, phải stop trước.
	if _, ok := StatusTransitions[ContentStatusScheduled][ContentActionDelete]; ok {
		t.Error("scheduled không được phép delete trực tiếp")
	}
	// draft không pause/stop được vì chưa từng lên lịch.
	if _, ok := StatusTransitions[ContentStatusDraft][ContentActionPause]; ok {
		t.Error("draft không được phép pause")
	}
	if _, ok := StatusTransitions[ContentStatusDraft][ContentActionStop]; ok {
		t.Error("draft không được phép stop")
	}
	// failed không pause/stop được.
	if _, ok := StatusTransitions[ContentStatusFailed][ContentActionPause]; ok {
		t.Error("failed không được phép pause")
	}
	// Terminal không có entry nào trong bảng.
	if _, ok := StatusTransitions[ContentStatusPublished]; ok {
		t.Error("published là terminal, không được có transition")
	}
	if _, ok := StatusTransitions[ContentStatusDeleted]; ok {
		t.Error("deleted là terminal, không được có transition")
	}
	// Trạng thái claim nội bộ không nhận action từ client.
	if _, ok := StatusTransitions[ContentStatusPublishing]; ok {
		t.Error("publishing là trạng thái nội bộ, không được có transition từ client")
	}
}

func TestAllowedActions_SortedVaOnDinh(t *testing.T) {
	got := AllowedActions(ContentStatusPaused)
	want := []string{"delete", "play", "stop"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllowedActions(paused) = %v, muốn %v", got, want)
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("AllowedActions phải được sort, nhận %v", got)
	}
	// Trạng thái terminal trả về slice rỗng, không nil panic.
	if got := AllowedActions(ContentStatusPublished); len(got) != 0 {
		t.Errorf("AllowedActions(published) = %v, muốn rỗng", got)
	}
}

func TestTerminalVaEditableStatuses(t *testing.T) {
	for _, s := range []string{ContentStatusPublished, ContentStatusDeleted} {
		if !IsTerminalStatus(s) {
			t.Errorf("%s phải là terminal", s)
		}
		if IsEditableStatus(s) {
			t.Errorf("%s là terminal, không được editable", s)
		}
	}
	for _, s := range []string{ContentStatusDraft, ContentStatusScheduled, ContentStatusPaused, ContentStatusFailed} {
		if IsTerminalStatus(s) {
			t.Errorf("%s không được là terminal", s)
		}
		if !IsEditableStatus(s) {
			t.Errorf("%s phải editable", s)
		}
	}
	// stopped: không terminal nhưng cũng không editable, chỉ còn đường xóa.
	if IsTerminalStatus(ContentStatusStopped) {
		t.Error("stopped không phải terminal")
	}
	if IsEditableStatus(ContentStatusStopped) {
		t.Error("stopped không được editable")
	}
}

func TestNormalizeHashtags(t *testing.T) {
	// Dedup giữ thứ tự xuất hiện đầu tiên, bỏ chuỗi rỗng.
	got := NormalizeHashtags([]string{"a", "b", "", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeHashtags dedup = %v, muốn %v", got, want)
	}

	// Cắt im lặng về MaxHashtags phần tử.
	many := make([]string, 0, MaxHashtags+10)
	for i := 0; i < MaxHashtags+10; i++ {
		many = append(many, string(rune('a'+i%26))+string(rune('0'+i/26)))
	}
	got = NormalizeHashtags(many)
	if len(got) != MaxHashtags {
		t.Errorf("NormalizeHashtags phải cắt về %d phần tử, nhận %d", MaxHashtags, len(got))
	}
	if !reflect.DeepEqual(got, many[:MaxHashtags]) {
		t.Error("NormalizeHashtags phải giữ đúng thứ tự khi cắt")
	}

	// nil giữ nguyên nil, slice rỗng giữ nguyên rỗng.
	if got := NormalizeHashtags(nil); got != nil {
		t.Errorf("NormalizeHashtags(nil) = %v, muốn nil", got)
	}
	if got := NormalizeHashtags([]string{}); len(got) != 0 {
		t.Errorf("NormalizeHashtags([]) = %v, muốn rỗng", got)
	}
}

func TestEnumHelpers(t *testing.T) {
	for _, p := range []string{"instagram", "youtube", "tiktok", "linkedin", "facebook", "twitter", "pinterest"} {
		if !IsValidPlatform(p) {
			t.Errorf("platform %s phải hợp lệ", p)
		}
	}
	if IsValidPlatform("threads") || IsValidPlatform("") {
		t.Error("platform ngoài danh sách phải bị từ chối")
	}

	for _, ct := range []string{"post", "reel", "short", "story", "video", "carousel", "live"} {
		if !IsValidContentType(ct) {
			t.Errorf("content type %s phải hợp lệ", ct)
		}
	}
	if IsValidContentType("podcast") {
		t.Error("content type ngoài danh sách phải bị từ chối")
	}

	// publishing là trạng thái nội bộ, client không được gửi lên.
	if IsValidStatus(ContentStatusPublishing) {
		t.Error("publishing không được là status client-visible")
	}
	if !IsValidStatus(ContentStatusDraft) || !IsValidStatus(ContentStatusFailed) {
		t.Error("các status vòng đời phải hợp lệ")
	}
}
