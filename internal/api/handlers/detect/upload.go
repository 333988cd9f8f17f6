package detect

import (
	"context"
	"errors"
	"io"
	"net/http"

	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/detection"
	"recipe-finder/internal/core/session"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Scanner 食材掃描服務介面，由 detection.Service 實作
type Scanner interface {
	ScanImage(ctx context.Context, imageBytes []byte) (*detection.ScanResult, error)
}

// IngredientStore 會話食材儲存介面，由 session.Store 實作
type IngredientStore interface {
	Get(ctx context.Context, sessionID string) ([]string, error)
	Put(ctx context.Context, sessionID string, names []string) error
}

// UploadResponse 圖片上傳成功時的響應
type UploadResponse struct {
	Success        bool                        `json:"success"`
	Ingredients    []detection.NamedIngredient `json:"ingredients"`
	AnnotatedImage string                      `json:"annotated_image"`
}

// HandleImageUpload 處理 POST /upload-image。
// 上傳圖片 → 偵測食材 → 併入會話集合 → 回傳食材與標註圖。
func HandleImageUpload(scanner Scanner, store IngredientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")

		// 取得上傳檔案
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			common.LogError("Failed to open uploaded file",
				zap.Error(err),
				zap.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		imageBytes, err := io.ReadAll(file)
		if err != nil {
			common.LogError("Failed to read uploaded file",
				zap.Error(err),
				zap.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		// 執行偵測管線
		result, err := scanner.ScanImage(c.Request.Context(), imageBytes)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrImageDecode):
				common.LogWarn("上傳圖片無法解碼",
					zap.String("request_id", requestID),
					zap.String("診斷", common.Truncate(err.Error(), 200)))
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image file"})
			case errors.Is(err, common.ErrNoIngredientsDetected):
				// 零偵測是使用者可見的失敗，不是空的成功
				common.LogInfo("圖片中未偵測到食材",
					zap.String("request_id", requestID))
				c.JSON(http.StatusBadRequest, gin.H{"error": "No ingredients detected"})
			default:
				common.LogError("食材偵測失敗",
					zap.String("request_id", requestID),
					zap.String("診斷", common.Truncate(err.Error(), 200)))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error detecting ingredients"})
			}
			return
		}

		// 併入會話集合後寫回
		sid := middleware.SessionID(c)
		existing, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			common.LogWarn("讀取會話食材失敗，視為空集合",
				zap.String("request_id", requestID),
				zap.Error(err))
			existing = nil
		}
		merged := session.Merge(existing, detection.Names(result.Ingredients))
		if err := store.Put(c.Request.Context(), sid, merged); err != nil {
			common.LogError("寫入會話食材失敗",
				zap.String("request_id", requestID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save detected ingredients"})
			return
		}

		common.LogInfo("圖片上傳處理完成",
			zap.String("request_id", requestID),
			zap.Int("ingredients_count", len(result.Ingredients)),
			zap.Int("session_total", len(merged)))

		c.JSON(http.StatusOK, UploadResponse{
			Success:     true,
			Ingredients: result.Ingredients,
			// 前端沿用舊介面：標註圖以 latin-1 逐位元組字串傳回
			AnnotatedImage: common.EncodeLatin1(result.Annotated),
		})
	}
}
