package image

import (
	"bytes"
	"fmt"
	"image"

	"recipe-finder/internal/pkg/common"

	_ "image/gif"  // 支援 GIF
	_ "image/jpeg" // 支援 JPEG
	_ "image/png"  // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP
)

// Service 圖片驗證服務。
// 在把上傳內容送進推論服務之前先做本地解碼檢查，
// 讓無法解讀的檔案在本機就以用戶端錯誤擋下，不用走一趟網路。
type Service struct {
	maxSizeBytes int64
}

// NewService 創建新的圖片驗證服務
func NewService(maxSizeBytes int64) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
	}
}

// Validate 驗證上傳的圖片位元組
func (s *Service) Validate(imageBytes []byte) error {
	if len(imageBytes) == 0 {
		return fmt.Errorf("%w: image data is empty", common.ErrImageDecode)
	}

	// 檢查檔案大小
	if int64(len(imageBytes)) > s.maxSizeBytes {
		return fmt.Errorf("%w: image size %d exceeds maximum limit of %d bytes",
			common.ErrImageDecode, len(imageBytes), s.maxSizeBytes)
	}

	// 解碼圖片
	_, format, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrImageDecode, err)
	}

	// 檢查圖片格式
	if !isSupportedFormat(format) {
		return fmt.Errorf("%w: unsupported image format %q", common.ErrImageDecode, format)
	}

	return nil
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"jpg":  true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
