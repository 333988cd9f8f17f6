package detect

import (
	"net/http"
	"strings"

	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/session"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddIngredientRequest 手動加入食材的請求
type AddIngredientRequest struct {
	Ingredient string `json:"ingredient"`
}

// HandleAddIngredient 處理 POST /add-ingredient。
// 加入已存在的名稱是無操作，不是錯誤。
func HandleAddIngredient(store IngredientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddIngredientRequest
		if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
			return
		}

		name := strings.TrimSpace(req.Ingredient)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No ingredient specified"})
			return
		}

		sid := middleware.SessionID(c)
		existing, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			common.LogError("讀取會話食材失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load session"})
			return
		}

		updated := session.Add(existing, name)
		if err := store.Put(c.Request.Context(), sid, updated); err != nil {
			common.LogError("寫入會話食材失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleListIngredients 處理 GET /ingredients，回傳會話目前的食材集合
func HandleListIngredients(store IngredientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := middleware.SessionID(c)
		names, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			common.LogError("讀取會話食材失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}
		if names == nil {
			names = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"ingredients": names})
	}
}
