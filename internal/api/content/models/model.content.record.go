package models

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ===== TRẠNG THÁI CONTENT =====

// Trạng thái vòng đời của một content record.
const (
	ContentStatusDraft     = "draft"     // mới tạo, chưa lên lịch
	ContentStatusScheduled = "scheduled" // đã lên lịch, chờ đến giờ đăng
	ContentStatusPaused    = "paused"    // tạm dừng, giữ nguyên scheduledAt
	ContentStatusStopped   = "stopped"   // dừng hẳn, chỉ còn đường xóa
	ContentStatusPublished = "published" // đã đăng thành công (terminal)
	ContentStatusFailed    = "failed"    // đăng thất bại, có thể retry
	ContentStatusDeleted   = "deleted"   // soft-delete (terminal)

	// ContentStatusPublishing là trạng thái claim nội bộ của scheduling worker.
	// Client không bao giờ gửi lên và projection báo cáo nó như scheduled.
	ContentStatusPublishing = "publishing"
)

// ===== HÀNH ĐỘNG =====

// Các verb mà action dispatcher chấp nhận.
const (
	ContentActionPlay       = "play"
	ContentActionPause      = "pause"
	ContentActionStop       = "stop"
	ContentActionDelete     = "delete"
	ContentActionRegenerate = "regenerate"
	ContentActionRecreate   = "recreate"
	ContentActionUpdate     = "update"
	ContentActionView       = "view"
)

// ===== PLATFORM / CONTENT TYPE =====

const (
	PlatformInstagram = "instagram"
	PlatformYoutube   = "youtube"
	PlatformTiktok    = "tiktok"
	PlatformLinkedin  = "linkedin"
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
	PlatformPinterest = "pinterest"
)

const (
	ContentTypePost     = "post"
	ContentTypeReel     = "reel"
	ContentTypeShort    = "short"
	ContentTypeStory    = "story"
	ContentTypeVideo    = "video"
	ContentTypeCarousel = "carousel"
	ContentTypeLive     = "live"
)

// MaxHashtags là số hashtag tối đa trên một record.
const MaxHashtags = 30

var validPlatforms = map[string]bool{
	PlatformInstagram: true,
	PlatformYoutube:   true,
	PlatformTiktok:    true,
	PlatformLinkedin:  true,
	PlatformFacebook:  true,
	PlatformTwitter:   true,
	PlatformPinterest: true,
}

var validContentTypes = map[string]bool{
	ContentTypePost:     true,
	ContentTypeReel:     true,
	ContentTypeShort:    true,
	ContentTypeStory:    true,
	ContentTypeVideo:    true,
	ContentTypeCarousel: true,
	ContentTypeLive:     true,
}

var validStatuses = map[string]bool{
	ContentStatusDraft:     true,
	ContentStatusScheduled: true,
	ContentStatusPaused:    true,
	ContentStatusStopped:   true,
	ContentStatusPublished: true,
	ContentStatusFailed:    true,
	ContentStatusDeleted:   true,
}

// IsValidPlatform kiểm tra platform có nằm trong danh sách hỗ trợ không.
func IsValidPlatform(p string) bool { return validPlatforms[p] }

// IsValidContentType kiểm tra content type có hợp lệ không.
func IsValidContentType(t string) bool { return validContentTypes[t] }

// IsValidStatus kiểm tra status có phải trạng thái client-visible không.
// ContentStatusPublishing là trạng thái nội bộ nên trả về false.
func IsValidStatus(s string) bool { return validStatuses[s] }

// ===== BẢNG CHUYỂN TRẠNG THÁI =====

// StatusTransitions ánh xạ (trạng thái hiện tại, action) -> trạng thái đích.
// Đây là nguồn chân lý duy nhất cho các chuyển trạng thái do user khởi tạo.
// Các chuyển nội bộ (scheduled -> publishing -> published/failed) do worker
// thực hiện, không đi qua bảng này.
var StatusTransitions = map[string]map[string]string{
	ContentStatusDraft: {
		ContentActionPlay:   ContentStatusScheduled,
		ContentActionDelete: ContentStatusDeleted,
	},
	ContentStatusScheduled: {
		ContentActionPause: ContentStatusPaused,
		ContentActionStop:  ContentStatusStopped,
	},
	ContentStatusPaused: {
		ContentActionPlay:   ContentStatusScheduled,
		ContentActionStop:   ContentStatusStopped,
		ContentActionDelete: ContentStatusDeleted,
	},
	ContentStatusStopped: {
		ContentActionDelete: ContentStatusDeleted,
	},
	ContentStatusFailed: {
		ContentActionPlay:   ContentStatusScheduled,
		ContentActionDelete: ContentStatusDeleted,
	},
}

// TerminalStatuses là các trạng thái không bao giờ rời đi được nữa.
var TerminalStatuses = map[string]bool{
	ContentStatusPublished: true,
	ContentStatusDeleted:   true,
}

// EditableStatuses là các trạng thái cho phép sửa nội dung
// (title, description, hashtags, scheduledAt) và regenerate/recreate.
var EditableStatuses = map[string]bool{
	ContentStatusDraft:     true,
	ContentStatusScheduled: true,
	ContentStatusPaused:    true,
	ContentStatusFailed:    true,
}

// AllowedActions trả về danh sách action hợp lệ từ một trạng thái, đã sort
// để error message ổn định giữa các lần gọi.
func AllowedActions(status string) []string {
	targets, ok := StatusTransitions[status]
	if !ok {
		return []string{}
	}
	actions := make([]string, 0, len(targets))
	for action := range targets {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return actions
}

// IsTerminalStatus kiểm tra trạng thái có phải terminal không.
func IsTerminalStatus(status string) bool { return TerminalStatuses[status] }

// IsEditableStatus kiểm tra trạng thái có cho phép sửa nội dung không.
func IsEditableStatus(status string) bool { return EditableStatuses[status] }

// NormalizeHashtags loại bỏ trùng lặp (giữ nguyên thứ tự xuất hiện đầu tiên)
// và cắt im lặng về MaxHashtags phần tử.
func NormalizeHashtags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
		if len(out) == MaxHashtags {
			break
		}
	}
	return out
}

// ===== MODEL =====

// ContentMetadata là metadata đính kèm của record. EngagementPrediction và
// TargetAudience được lưu opaque, hệ thống không diễn giải.
type ContentMetadata struct {
	AIGenerated          bool        `json:"aiGenerated" bson:"aiGenerated"`
	EngagementPrediction interface{} `json:"engagementPrediction,omitempty" bson:"engagementPrediction,omitempty"`
	TargetAudience       interface{} `json:"targetAudience,omitempty" bson:"targetAudience,omitempty"`
}

// ContentRecord là một đơn vị nội dung trong lịch đăng của project.
// Mỗi (projectId, dayNumber, platform) chỉ có đúng một record.
type ContentRecord struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// ===== THUỘC PROJECT =====
	ProjectID *primitive.ObjectID `json:"projectId,omitempty" bson:"projectId,omitempty" index:"single:1;compound:project_day_platform_unique"`
	DayNumber int                 `json:"dayNumber" bson:"dayNumber" index:"compound:project_day_platform_unique"`

	// ===== NỘI DUNG =====
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Platform    string   `json:"platform" bson:"platform" index:"single:1;compound:project_day_platform_unique"`
	ContentType string   `json:"contentType" bson:"contentType"`
	Hashtags    []string `json:"hashtags,omitempty" bson:"hashtags,omitempty"`

	// ===== TRẠNG THÁI =====
	Status        string `json:"status" bson:"status" default:"draft" index:"single:1"`
	FailureReason string `json:"failureReason,omitempty" bson:"failureReason,omitempty"`

	// ===== LỊCH ĐĂNG =====
	ScheduledAt *int64 `json:"scheduledAt,omitempty" bson:"scheduledAt,omitempty" index:"single:1"`
	PublishedAt *int64 `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`

	// ID bài đăng bên platform, set khi publish thành công.
	PlatformPostID string `json:"platformPostId,omitempty" bson:"platformPostId,omitempty"`

	Metadata ContentMetadata `json:"metadata" bson:"metadata"`

	// Version tăng trên mỗi lần ghi, dùng cho optimistic concurrency.
	Version int64 `json:"version" bson:"version" default:"1"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
