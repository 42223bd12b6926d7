package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"content_pilot/config"
	"content_pilot/internal/common"
	"content_pilot/internal/logger"
)

// PublishRequest là payload đăng một bài lên platform.
type PublishRequest struct {
	Platform    string   `json:"platform"`
	ContentType string   `json:"contentType"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Hashtags    []string `json:"hashtags,omitempty"`
}

// PublishResult trả về ID bài đăng bên platform khi thành công.
type PublishResult struct {
	PlatformPostID string `json:"platformPostId"`
}

// Publisher đăng nội dung lên platform qua collaborator bên ngoài.
// Timeout do caller kiểm soát qua context, vì mỗi lần publish của
// scheduling worker có deadline riêng.
type Publisher interface {
	Publish(ctx context.Context, req *PublishRequest) (*PublishResult, error)
}

// HTTPPublisher gọi publisher service qua HTTP.
type HTTPPublisher struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPPublisher tạo publisher từ cấu hình server.
func NewHTTPPublisher(cfg *config.Configuration) *HTTPPublisher {
	return &HTTPPublisher{
		baseURL: cfg.PublisherBaseURL,
		apiKey:  cfg.PublisherAPIKey,
		client:  &http.Client{}, // timeout theo context của từng lần publish
	}
}

// Publish gọi endpoint /v1/publish. Status khác 200 là publish thất bại.
func (p *HTTPPublisher) Publish(ctx context.Context, pubReq *PublishRequest) (*PublishResult, error) {
	log := logger.GetAppLogger()

	url := p.baseURL + "/v1/publish"
	jsonData, err := json.Marshal(pubReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"platform": pubReq.Platform,
			"url":      url,
		}).Error("📤 [PUBLISHER] Lỗi khi gọi publisher service")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(map[string]interface{}{
			"platform":   pubReq.Platform,
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("📤 [PUBLISHER] Publisher service trả về lỗi")
		return nil, common.NewError(common.ErrCodePublishFailed,
			fmt.Sprintf("publisher service returned status %d: %s", resp.StatusCode, string(bodyBytes)),
			common.StatusBadGateway, map[string]interface{}{
				"platform":   pubReq.Platform,
				"statusCode": resp.StatusCode,
			})
	}

	var result PublishResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("publisher service trả về body không hợp lệ: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"platform":       pubReq.Platform,
		"platformPostId": result.PlatformPostID,
	}).Info("📤 [PUBLISHER] Đăng bài thành công")
	return &result, nil
}
