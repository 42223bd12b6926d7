package aigen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"content_pilot/config"
	"content_pilot/internal/logger"
)

// GenerationMode phân biệt hai kiểu sinh nội dung.
const (
	ModeRegenerate = "regenerate" // tinh chỉnh dựa trên nội dung hiện có
	ModeRecreate   = "recreate"   // sinh lại từ đầu, chỉ giữ ngữ cảnh platform/contentType
)

// GenerationRequest là payload gửi sang AI content service.
type GenerationRequest struct {
	Mode        string   `json:"mode"`
	Platform    string   `json:"platform"`
	ContentType string   `json:"contentType"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Hashtags    []string `json:"hashtags,omitempty"`
	Prompt      string   `json:"prompt,omitempty"`
}

// GenerationResult là nội dung AI trả về.
type GenerationResult struct {
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Hashtags             []string    `json:"hashtags,omitempty"`
	EngagementPrediction interface{} `json:"engagementPrediction,omitempty"`
	TargetAudience       interface{} `json:"targetAudience,omitempty"`
}

// EnhanceRequest là payload cải thiện một field đơn lẻ của record.
type EnhanceRequest struct {
	Field        string `json:"field"` // title hoặc description
	CurrentValue string `json:"currentValue"`
	Platform     string `json:"platform"`
	ContentType  string `json:"contentType"`
	Prompt       string `json:"prompt,omitempty"`
}

// EnhanceResult là giá trị mới của field.
type EnhanceResult struct {
	Value string `json:"value"`
}

// Generator sinh nội dung qua AI collaborator bên ngoài.
type Generator interface {
	Generate(ctx context.Context, req *GenerationRequest) (*GenerationResult, error)
	EnhanceField(ctx context.Context, req *EnhanceRequest) (*EnhanceResult, error)
}

// HTTPGenerator gọi AI service qua HTTP.
type HTTPGenerator struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGenerator tạo generator từ cấu hình server.
func NewHTTPGenerator(cfg *config.Configuration) *HTTPGenerator {
	timeout := time.Duration(cfg.AIGenTimeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPGenerator{
		baseURL: cfg.AIGenBaseURL,
		apiKey:  cfg.AIGenAPIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Generate gọi endpoint /v1/generate của AI service. Lỗi mạng, timeout hay
// status khác 200 đều trả về error để caller giữ record nguyên trạng.
func (g *HTTPGenerator) Generate(ctx context.Context, genReq *GenerationRequest) (*GenerationResult, error) {
	log := logger.GetAppLogger()

	url := g.baseURL + "/v1/generate"
	jsonData, err := json.Marshal(genReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"mode":     genReq.Mode,
			"platform": genReq.Platform,
			"url":      url,
		}).Error("🤖 [AIGEN] Lỗi khi gọi AI generation service")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(map[string]interface{}{
			"mode":       genReq.Mode,
			"platform":   genReq.Platform,
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("🤖 [AIGEN] AI generation service trả về lỗi")
		return nil, fmt.Errorf("aigen service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result GenerationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("aigen service trả về body không hợp lệ: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"mode":     genReq.Mode,
		"platform": genReq.Platform,
	}).Info("🤖 [AIGEN] Sinh nội dung thành công")
	return &result, nil
}

// EnhanceField gọi endpoint /v1/enhance để cải thiện một field đơn lẻ dựa
// trên giá trị hiện tại. Lỗi để caller giữ record nguyên trạng.
func (g *HTTPGenerator) EnhanceField(ctx context.Context, enhReq *EnhanceRequest) (*EnhanceResult, error) {
	log := logger.GetAppLogger()

	url := g.baseURL + "/v1/enhance"
	jsonData, err := json.Marshal(enhReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"field":    enhReq.Field,
			"platform": enhReq.Platform,
			"url":      url,
		}).Error("🤖 [AIGEN] Lỗi khi gọi AI enhance service")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(map[string]interface{}{
			"field":      enhReq.Field,
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("🤖 [AIGEN] AI enhance service trả về lỗi")
		return nil, fmt.Errorf("aigen service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result EnhanceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("aigen service trả về body không hợp lệ: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"field":    enhReq.Field,
		"platform": enhReq.Platform,
	}).Info("🤖 [AIGEN] Enhance field thành công")
	return &result, nil
}
