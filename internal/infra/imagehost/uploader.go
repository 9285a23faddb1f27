// internal/infra/imagehost/uploader.go
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// 外部画像ホスト（imgbb 互換の multipart API）を叩く実装。
// GCS バケットを持たないデプロイ先のフォールバックとして使う。
type HTTPUploader struct {
	client  *http.Client
	baseURL string // 例: "https://api.imgbb.com/1/upload"
	apiKey  string
}

// NewHTTPUploader creates an uploader against an external image host.
func NewHTTPUploader(baseURL, apiKey string) *HTTPUploader {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")

	return &HTTPUploader{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Upload posts the image as a multipart form and returns the hosted URL.
// Satisfies usecase.ImageStore.
func (u *HTTPUploader) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image payload is empty")
	}
	if u.baseURL == "" {
		return "", fmt.Errorf("baseURL is empty; image host not configured")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if u.apiKey != "" {
		if err := mw.WriteField("key", u.apiKey); err != nil {
			return "", fmt.Errorf("write key field: %w", err)
		}
	}
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		log.Printf("[imagehost] http request FAILED err=%v", err)
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[imagehost] upload FAILED status=%d body=%s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("upload image failed: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var res struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Printf("[imagehost] decode upload response FAILED err=%v body=%s", err, string(bodyBytes))
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	url := res.Data.URL
	if url == "" {
		url = res.URL
	}
	if url == "" {
		return "", fmt.Errorf("upload response has empty url")
	}

	return url, nil
}
