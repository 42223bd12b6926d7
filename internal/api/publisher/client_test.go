// Package publisher - Test HTTPPublisher với mock publisher service.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content_pilot/internal/common"
)

func TestHTTPPublisher_Publish_ThanhCong(t *testing.T) {
	var gotReq PublishRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/publish", r.URL.Path, "Phải gọi đúng endpoint publish")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq), "Phải decode được request")
		json.NewEncoder(w).Encode(PublishResult{PlatformPostID: "ig_12345"})
	}))
	defer server.Close()

	p := &HTTPPublisher{baseURL: server.URL, client: server.Client()}
	result, err := p.Publish(context.Background(), &PublishRequest{
		Platform:    "instagram",
		ContentType: "post",
		Title:       "Bài test",
		Hashtags:    []string{"a", "b"},
	})
	require.NoError(t, err, "Publish không được lỗi")
	assert.Equal(t, "ig_12345", result.PlatformPostID)
	assert.Equal(t, "instagram", gotReq.Platform)
	assert.Equal(t, "Bài test", gotReq.Title)
}

func TestHTTPPublisher_Publish_ServiceLoi(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited by platform", http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := &HTTPPublisher{baseURL: server.URL, client: server.Client()}
	result, err := p.Publish(context.Background(), &PublishRequest{Platform: "tiktok", Title: "x"})
	require.Error(t, err, "Status 429 phải trả về lỗi")
	assert.Nil(t, result, "Khi lỗi không được trả về result")

	// Lỗi phải là PublishFailed và mang body từ platform trong message,
	// worker lưu message này vào failureReason.
	var customErr *common.Error
	require.True(t, errors.As(err, &customErr), "Lỗi phải là *common.Error")
	assert.Equal(t, common.ErrCodePublishFailed.Code, customErr.Code.Code)
	assert.Contains(t, err.Error(), "rate limited by platform")
}

func TestHTTPPublisher_Publish_BodyHong(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	}))
	defer server.Close()

	p := &HTTPPublisher{baseURL: server.URL, client: server.Client()}
	_, err := p.Publish(context.Background(), &PublishRequest{Platform: "youtube"})
	assert.Error(t, err, "Body không phải JSON phải trả về lỗi")
}
