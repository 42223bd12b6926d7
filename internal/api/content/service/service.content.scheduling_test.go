// Package contentsvc - Test filter thu hồi claim publishing mồ côi.
package contentsvc

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	contentmodels "content_pilot/internal/api/content/models"
)

func TestStaleClaimFilter_ChiDungPublishingCuHonCutoff(t *testing.T) {
	cutoff := int64(1_700_000_000_000)
	got := staleClaimFilter(cutoff)

	want := bson.M{
		"status":    contentmodels.ContentStatusPublishing,
		"updatedAt": bson.M{"$lt": cutoff},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("staleClaimFilter = %v, muốn %v", got, want)
	}

	// Sweep chỉ được đụng vào publishing: record scheduled đến hạn vẫn
	// thuộc về vòng scan bình thường, không được chuyển sang failed.
	if got["status"] != contentmodels.ContentStatusPublishing {
		t.Errorf("filter phải khóa chặt vào publishing, nhận %v", got["status"])
	}
}
