// Package worker - Test mốc thời gian coi một claim publishing là mồ côi.
package worker

import (
	"testing"
	"time"
)

func TestStaleClaimCutoff(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	timeout := 30 * time.Second

	got := staleClaimCutoff(now, timeout)
	want := now.Add(-90 * time.Second).UnixMilli()
	if got != want {
		t.Errorf("staleClaimCutoff = %d, muốn %d", got, want)
	}

	// Claim vừa tạo trong vòng một publish timeout không bao giờ bị coi là
	// mồ côi, worker đang giữ vẫn có thể chốt kết quả.
	justClaimed := now.Add(-timeout).UnixMilli()
	if justClaimed < got {
		t.Error("claim trong vòng một timeout không được rơi dưới cutoff")
	}
}
