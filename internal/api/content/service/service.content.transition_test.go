// Package contentsvc - Test planTransition: gate terminal, bảng chuyển trạng
// thái và các precondition về scheduledAt.
package contentsvc

import (
	"errors"
	"testing"

	contentmodels "content_pilot/internal/api/content/models"
	"content_pilot/internal/common"
)

func assertErrCode(t *testing.T, err error, want common.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("muốn lỗi %s nhưng nhận nil", want.Code)
	}
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("lỗi không phải *common.Error: %v", err)
	}
	if customErr.Code.Code != want.Code {
		t.Fatalf("mã lỗi = %s, muốn %s (message: %s)", customErr.Code.Code, want.Code, customErr.Message)
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestPlanTransition_DraftPlayCanScheduledAt(t *testing.T) {
	now := int64(1_000_000)
	record := &contentmodels.ContentRecord{Status: contentmodels.ContentStatusDraft}

	// Draft chưa có lịch, play mà không gửi scheduledAt thì bị từ chối.
	_, _, err := planTransition(record, contentmodels.ContentActionPlay, nil, now)
	assertErrCode(t, err, common.ErrCodeInvalidTransition)

	// Gửi kèm scheduledAt thì lên scheduled, update set cả hai field.
	target, update, err := planTransition(record, contentmodels.ContentActionPlay, int64Ptr(now+60_000), now)
	if err != nil {
		t.Fatalf("play từ draft với scheduledAt lỗi: %v", err)
	}
	if target != contentmodels.ContentStatusScheduled {
		t.Errorf("target = %s, muốn scheduled", target)
	}
	if update.Set["status"] != contentmodels.ContentStatusScheduled {
		t.Errorf("update phải set status=scheduled, nhận %v", update.Set["status"])
	}
	if update.Set["scheduledAt"] != now+60_000 {
		t.Errorf("update phải set scheduledAt, nhận %v", update.Set["scheduledAt"])
	}
}

func TestPlanTransition_DraftPlayDungLichCoSan(t *testing.T) {
	now := int64(1_000_000)
	record := &contentmodels.ContentRecord{
		Status:      contentmodels.ContentStatusDraft,
		ScheduledAt: int64Ptr(now + 500),
	}
	target, update, err := planTransition(record, contentmodels.ContentActionPlay, nil, now)
	if err != nil {
		t.Fatalf("draft đã có lịch phải play được: %v", err)
	}
	if target != contentmodels.ContentStatusScheduled {
		t.Errorf("target = %s", target)
	}
	// Không gửi scheduledAt mới thì không đụng vào field đó.
	if _, has := update.Set["scheduledAt"]; has {
		t.Error("không gửi scheduledAt thì update không được set lại field đó")
	}
}

func TestPlanTransition_ResumeTuPausedPhaiLaTuongLai(t *testing.T) {
	now := int64(1_000_000)

	// Lịch cũ đã qua, resume không kèm lịch mới thì bị từ chối.
	stale := &contentmodels.ContentRecord{
		Status:      contentmodels.ContentStatusPaused,
		ScheduledAt: int64Ptr(now - 1),
	}
	_, _, err := planTransition(stale, contentmodels.ContentActionPlay, nil, now)
	assertErrCode(t, err, common.ErrCodeInvalidTransition)

	// Lịch mới vẫn ở quá khứ cũng bị từ chối, kể cả bằng đúng now.
	_, _, err = planTransition(stale, contentmodels.ContentActionPlay, int64Ptr(now), now)
	assertErrCode(t, err, common.ErrCodeInvalidTransition)

	// Lịch mới ở tương lai thì resume được.
	target, _, err := planTransition(stale, contentmodels.ContentActionPlay, int64Ptr(now+1), now)
	if err != nil {
		t.Fatalf("resume với lịch tương lai lỗi: %v", err)
	}
	if target != contentmodels.ContentStatusScheduled {
		t.Errorf("target = %s", target)
	}

	// Lịch cũ còn ở tương lai thì resume thẳng, không cần gửi lại.
	fresh := &contentmodels.ContentRecord{
		Status:      contentmodels.ContentStatusPaused,
		ScheduledAt: int64Ptr(now + 10_000),
	}
	if _, _, err := planTransition(fresh, contentmodels.ContentActionPlay, nil, now); err != nil {
		t.Errorf("lịch còn hạn phải resume được: %v", err)
	}
}

func TestPlanTransition_RetryTuFailed(t *testing.T) {
	now := int64(1_000_000)
	record := &contentmodels.ContentRecord{
		Status:        contentmodels.ContentStatusFailed,
		FailureReason: "platform timeout",
		ScheduledAt:   int64Ptr(now - 5_000),
	}

	// Retry từ failed không yêu cầu lịch tương lai: lịch quá hạn nghĩa là
	// worker sẽ nhặt ngay ở lần scan kế tiếp.
	target, update, err := planTransition(record, contentmodels.ContentActionPlay, nil, now)
	if err != nil {
		t.Fatalf("retry từ failed lỗi: %v", err)
	}
	if target != contentmodels.ContentStatusScheduled {
		t.Errorf("target = %s", target)
	}
	if _, has := update.Unset["failureReason"]; !has {
		t.Error("retry phải unset failureReason của lần trước")
	}
}

func TestPlanTransition_TerminalVaNgoaiBang(t *testing.T) {
	now := int64(1_000_000)

	for _, status := range []string{contentmodels.ContentStatusPublished, contentmodels.ContentStatusDeleted} {
		record := &contentmodels.ContentRecord{Status: status}
		_, _, err := planTransition(record, contentmodels.ContentActionDelete, nil, now)
		assertErrCode(t, err, common.ErrCodeTerminalState)
	}

	// scheduled không delete trực tiếp được.
	scheduled := &contentmodels.ContentRecord{Status: contentmodels.ContentStatusScheduled, ScheduledAt: int64Ptr(now + 1)}
	_, _, err := planTransition(scheduled, contentmodels.ContentActionDelete, nil, now)
	assertErrCode(t, err, common.ErrCodeInvalidTransition)

	// pause từ scheduled giữ nguyên scheduledAt.
	target, update, err := planTransition(scheduled, contentmodels.ContentActionPause, nil, now)
	if err != nil {
		t.Fatalf("pause từ scheduled lỗi: %v", err)
	}
	if target != contentmodels.ContentStatusPaused {
		t.Errorf("target = %s", target)
	}
	if _, has := update.Set["scheduledAt"]; has {
		t.Error("pause không được đụng vào scheduledAt")
	}
}

func TestPlanTransition_ScheduledAtChiApDungKhiLenLich(t *testing.T) {
	// Payload có scheduledAt nhưng đích không phải scheduled thì lịch
	// giữ nguyên: pause/stop/delete không phải đường đổi lịch.
	now := int64(1_000_000)
	cases := []struct {
		status string
		action string
	}{
		{contentmodels.ContentStatusScheduled, contentmodels.ContentActionPause},
		{contentmodels.ContentStatusScheduled, contentmodels.ContentActionStop},
		{contentmodels.ContentStatusPaused, contentmodels.ContentActionDelete},
	}
	for _, tc := range cases {
		record := &contentmodels.ContentRecord{Status: tc.status, ScheduledAt: int64Ptr(now + 1)}
		_, update, err := planTransition(record, tc.action, int64Ptr(now+999), now)
		if err != nil {
			t.Fatalf("%s từ %s lỗi: %v", tc.action, tc.status, err)
		}
		if _, has := update.Set["scheduledAt"]; has {
			t.Errorf("%s từ %s không được ghi scheduledAt từ payload", tc.action, tc.status)
		}
	}
}
