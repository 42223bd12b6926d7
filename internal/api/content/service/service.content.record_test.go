// Package contentsvc - Test edit gating và chuẩn hóa record trước khi insert.
package contentsvc

import (
	"reflect"
	"testing"

	contentmodels "content_pilot/internal/api/content/models"
	"content_pilot/internal/common"
)

func TestCheckEditable_PublishedTraVeImmutableState(t *testing.T) {
	// Edit trên record đã published là vi phạm bất biến, không phải
	// terminal-state: client phải nhận đúng mã để phân biệt với deleted.
	err := checkEditable(contentmodels.ContentStatusPublished, contentmodels.ContentActionRegenerate)
	assertErrCode(t, err, common.ErrCodeImmutableState)
}

func TestCheckEditable_DeletedTraVeTerminalState(t *testing.T) {
	err := checkEditable(contentmodels.ContentStatusDeleted, contentmodels.ContentActionUpdate)
	assertErrCode(t, err, common.ErrCodeTerminalState)
}

func TestCheckEditable_TrangThaiKhongChoSua(t *testing.T) {
	// stopped và publishing không sửa được nhưng không phải deleted,
	// đều nhận ImmutableState.
	for _, status := range []string{
		contentmodels.ContentStatusStopped,
		contentmodels.ContentStatusPublishing,
	} {
		err := checkEditable(status, contentmodels.ContentActionUpdate)
		assertErrCode(t, err, common.ErrCodeImmutableState)
	}
}

func TestCheckEditable_TrangThaiChoSua(t *testing.T) {
	for _, status := range []string{
		contentmodels.ContentStatusDraft,
		contentmodels.ContentStatusScheduled,
		contentmodels.ContentStatusPaused,
		contentmodels.ContentStatusFailed,
	} {
		if err := checkEditable(status, contentmodels.ContentActionUpdate); err != nil {
			t.Errorf("trạng thái %s phải cho sửa, nhận lỗi %v", status, err)
		}
	}
}

func TestNormalizeNewRecord_EpTrangThaiKhoiTao(t *testing.T) {
	publishedAt := int64(1_700_000_000_000)
	record := contentmodels.ContentRecord{
		Platform:       contentmodels.PlatformInstagram,
		ContentType:    contentmodels.ContentTypeReel,
		Status:         contentmodels.ContentStatusPublished,
		Hashtags:       []string{"a", "b", "a"},
		PublishedAt:    &publishedAt,
		PlatformPostID: "ig_123",
		FailureReason:  "lỗi cũ",
	}
	record.Metadata.AIGenerated = true

	got, err := normalizeNewRecord(record)
	if err != nil {
		t.Fatalf("normalizeNewRecord lỗi: %v", err)
	}
	if got.Status != contentmodels.ContentStatusDraft {
		t.Errorf("record mới phải là draft, nhận %s", got.Status)
	}
	if !reflect.DeepEqual(got.Hashtags, []string{"a", "b"}) {
		t.Errorf("hashtags phải được chuẩn hóa, nhận %v", got.Hashtags)
	}
	if got.PublishedAt != nil || got.PlatformPostID != "" || got.FailureReason != "" {
		t.Error("các trường do worker quản lý phải bị xóa khi insert")
	}
	if got.Metadata.AIGenerated {
		t.Error("record mới không được mang cờ aiGenerated")
	}
}

func TestNormalizeNewRecord_EnumKhongHopLe(t *testing.T) {
	_, err := normalizeNewRecord(contentmodels.ContentRecord{
		Platform:    "threads",
		ContentType: contentmodels.ContentTypePost,
	})
	assertErrCode(t, err, common.ErrCodeValidationInput)

	_, err = normalizeNewRecord(contentmodels.ContentRecord{
		Platform:    contentmodels.PlatformYoutube,
		ContentType: "podcast",
	})
	assertErrCode(t, err, common.ErrCodeValidationInput)
}
