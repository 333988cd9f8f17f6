package detection

import (
	"context"
	"fmt"

	imageService "recipe-finder/internal/core/image"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Inference 推論服務介面，由 Detector 實作
type Inference interface {
	Detect(ctx context.Context, imageBytes []byte) ([]Detection, error)
	Annotate(ctx context.Context, imageBytes []byte) ([]byte, error)
}

// ScanResult 掃描結果：去重後的食材與畫上邊界框的圖片
type ScanResult struct {
	Ingredients []NamedIngredient
	Annotated   []byte
}

// Service 食材掃描服務，串接驗證、推論、標籤對應
type Service struct {
	inference Inference
	validator *imageService.Service
}

// NewService 創建食材掃描服務
func NewService(inference Inference, validator *imageService.Service) *Service {
	return &Service{
		inference: inference,
		validator: validator,
	}
}

// ScanImage 對上傳圖片執行完整的偵測管線。
// 推論成功但沒有任何可對應的食材時回傳 ErrNoIngredientsDetected，
// 呼叫端必須把它當成使用者可見的失敗，而不是空的成功結果。
func (s *Service) ScanImage(ctx context.Context, imageBytes []byte) (*ScanResult, error) {
	// 本地解碼檢查，擋下無法解讀的檔案
	if err := s.validator.Validate(imageBytes); err != nil {
		return nil, err
	}

	// 推論
	detections, err := s.inference.Detect(ctx, imageBytes)
	if err != nil {
		return nil, err
	}

	// 標籤對應與去重
	ingredients := Normalize(detections)
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("%w: %d raw detections, none mapped",
			common.ErrNoIngredientsDetected, len(detections))
	}

	// 產生標註圖
	annotated, err := s.inference.Annotate(ctx, imageBytes)
	if err != nil {
		return nil, err
	}

	common.LogInfo("食材掃描完成",
		zap.Int("偵測筆數", len(detections)),
		zap.Int("食材數", len(ingredients)),
		zap.Strings("食材", Names(ingredients)),
	)

	return &ScanResult{
		Ingredients: ingredients,
		Annotated:   annotated,
	}, nil
}
