// Package aigen - Test HTTPGenerator với mock AI service.
package aigen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(baseURL string) *HTTPGenerator {
	return &HTTPGenerator{
		baseURL: baseURL,
		apiKey:  "test-key",
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestHTTPGenerator_Generate_ThanhCong(t *testing.T) {
	var gotReq GenerationRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/generate", r.URL.Path, "Phải gọi đúng endpoint generate")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq), "Phải decode được request")
		json.NewEncoder(w).Encode(GenerationResult{
			Title:       "Tiêu đề mới",
			Description: "Mô tả mới",
			Hashtags:    []string{"tet", "sale"},
		})
	}))
	defer server.Close()

	g := newTestGenerator(server.URL)
	result, err := g.Generate(context.Background(), &GenerationRequest{
		Mode:        ModeRegenerate,
		Platform:    "instagram",
		ContentType: "reel",
		Title:       "Tiêu đề cũ",
	})
	require.NoError(t, err, "Generate không được lỗi")
	assert.Equal(t, "Tiêu đề mới", result.Title)
	assert.Len(t, result.Hashtags, 2)
	assert.Equal(t, ModeRegenerate, gotReq.Mode, "Request phải mang đúng mode")
	assert.Equal(t, "Tiêu đề cũ", gotReq.Title, "Regenerate phải gửi kèm title hiện có")
	assert.Equal(t, "Bearer test-key", gotAuth, "Phải gửi bearer token")
}

func TestHTTPGenerator_Generate_ServiceLoi(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	g := newTestGenerator(server.URL)
	result, err := g.Generate(context.Background(), &GenerationRequest{Mode: ModeRecreate, Platform: "tiktok"})
	require.Error(t, err, "Status 503 phải trả về lỗi")
	assert.Nil(t, result, "Khi lỗi không được trả về result")
}

func TestHTTPGenerator_EnhanceField(t *testing.T) {
	var gotReq EnhanceRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/enhance", r.URL.Path, "Phải gọi đúng endpoint enhance")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq), "Phải decode được request")
		json.NewEncoder(w).Encode(EnhanceResult{Value: "Tiêu đề hay hơn"})
	}))
	defer server.Close()

	g := newTestGenerator(server.URL)
	result, err := g.EnhanceField(context.Background(), &EnhanceRequest{
		Field:        "title",
		CurrentValue: "Tiêu đề thường",
		Platform:     "linkedin",
		ContentType:  "post",
	})
	require.NoError(t, err, "EnhanceField không được lỗi")
	assert.Equal(t, "Tiêu đề hay hơn", result.Value)
	assert.Equal(t, "title", gotReq.Field)
	assert.Equal(t, "Tiêu đề thường", gotReq.CurrentValue, "Phải gửi giá trị hiện tại cho AI")
}

func TestHTTPGenerator_Generate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(GenerationResult{})
	}))
	defer server.Close()

	g := newTestGenerator(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.Generate(ctx, &GenerationRequest{Mode: ModeRegenerate})
	assert.Error(t, err, "Context timeout phải trả về lỗi")
}
