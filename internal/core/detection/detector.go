package detection

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Detector 包裝外部 YOLO 推論服務。
// 模型權重在推論服務啟動時載入一次，之後只讀，
// 因此同一個 Detector 可以被多個請求併發使用。
type Detector struct {
	client        *resty.Client
	confThreshold float64
}

// NewDetector 創建偵測服務客戶端
func NewDetector(cfg *config.DetectorConfig) *Detector {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &Detector{
		client:        client,
		confThreshold: cfg.ConfThreshold,
	}
}

// Detect 對圖片執行推論，回傳原始偵測結果。
// 零筆偵測是合法的成功結果，不是錯誤。
func (d *Detector) Detect(ctx context.Context, imageBytes []byte) ([]Detection, error) {
	start := time.Now()

	var result struct {
		Detections []Detection `json:"detections"`
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetFileReader("image", "image.jpg", bytes.NewReader(imageBytes)).
		SetResult(&result).
		// 推論服務偶爾漏標 Content-Type，強制以 JSON 解析，
		// 避免回應被靜默跳過而誤判成零偵測
		ForceContentType("application/json").
		Post("/detect")

	common.LogDetection("detect", time.Since(start), err,
		zap.Int("image_size", len(imageBytes)),
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDetection, err)
	}
	if resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusUnsupportedMediaType {
		// 推論服務拒絕輸入代表圖片本身無法解碼，屬於用戶端錯誤
		return nil, fmt.Errorf("%w: inference service rejected image: %s",
			common.ErrImageDecode, common.Truncate(resp.String(), 200))
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: inference service returned status %d",
			common.ErrDetection, resp.StatusCode())
	}

	// 過濾低信心值的結果
	filtered := make([]Detection, 0, len(result.Detections))
	for _, det := range result.Detections {
		if det.Confidence >= d.confThreshold {
			filtered = append(filtered, det)
		}
	}

	return filtered, nil
}

// Annotate 回傳畫上邊界框的圖片，編碼與輸入相同
func (d *Detector) Annotate(ctx context.Context, imageBytes []byte) ([]byte, error) {
	start := time.Now()

	resp, err := d.client.R().
		SetContext(ctx).
		SetFileReader("image", "image.jpg", bytes.NewReader(imageBytes)).
		Post("/annotate")

	common.LogDetection("annotate", time.Since(start), err,
		zap.Int("image_size", len(imageBytes)),
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDetection, err)
	}
	if resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusUnsupportedMediaType {
		return nil, fmt.Errorf("%w: inference service rejected image: %s",
			common.ErrImageDecode, common.Truncate(resp.String(), 200))
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: inference service returned status %d",
			common.ErrDetection, resp.StatusCode())
	}

	return resp.Body(), nil
}

// Health 檢查推論服務是否可用
func (d *Detector) Health(ctx context.Context) error {
	resp, err := d.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return fmt.Errorf("detector health check failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("detector unhealthy: status %d", resp.StatusCode())
	}
	return nil
}
