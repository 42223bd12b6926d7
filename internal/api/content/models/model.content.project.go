package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ContentProject gom các content record thành một lịch đăng nhiều ngày.
// Record vẫn có thể tồn tại độc lập (projectId = null).
type ContentProject struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	Name        string `json:"name" bson:"name" index:"text"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	// Các platform mà project nhắm tới, dùng làm mặc định khi extend calendar.
	Platforms []string `json:"platforms,omitempty" bson:"platforms,omitempty"`

	// Số ngày hiện có trong lịch, cập nhật khi extend.
	TotalDays int `json:"totalDays" bson:"totalDays"`

	Status string `json:"status" bson:"status" default:"active" index:"single:1"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// Trạng thái của project.
const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)
