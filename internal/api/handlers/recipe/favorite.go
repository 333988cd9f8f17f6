package recipe

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Favorites 收藏操作介面，由 recipe.FavoritesRepository 實作
type Favorites interface {
	GetRecipeByID(ctx context.Context, recipeID int64) (*recipeService.Recipe, error)
	AddFavorite(ctx context.Context, userID string, recipeID int64) error
	RemoveFavorite(ctx context.Context, userID string, recipeID int64) (bool, error)
	GetUserFavorites(ctx context.Context, userID string) ([]recipeService.Recipe, error)
}

// userID 取出請求的使用者身份。
// 身份驗證由外部閘道處理，這裡只信任它放進來的標頭。
func userID(c *gin.Context) (string, bool) {
	uid := c.GetHeader("X-User-ID")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return "", false
	}
	return uid, true
}

// recipeIDParam 解析路徑中的食譜 ID
func recipeIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return 0, false
	}
	return id, true
}

// HandleAddFavorite 處理 POST /favorites/:recipe_id
func HandleAddFavorite(favorites Favorites) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		recipeID, ok := recipeIDParam(c)
		if !ok {
			return
		}

		// 先確認食譜存在
		if _, err := favorites.GetRecipeByID(c.Request.Context(), recipeID); err != nil {
			if errors.Is(err, recipeService.ErrRecipeNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
				return
			}
			common.LogError("查詢食譜失敗", zap.Int64("recipe_id", recipeID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up recipe"})
			return
		}

		if err := favorites.AddFavorite(c.Request.Context(), uid, recipeID); err != nil {
			common.LogError("加入收藏失敗", zap.Int64("recipe_id", recipeID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleRemoveFavorite 處理 DELETE /favorites/:recipe_id
func HandleRemoveFavorite(favorites Favorites) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		recipeID, ok := recipeIDParam(c)
		if !ok {
			return
		}

		removed, err := favorites.RemoveFavorite(c.Request.Context(), uid, recipeID)
		if err != nil {
			common.LogError("移除收藏失敗", zap.Int64("recipe_id", recipeID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
			return
		}
		if !removed {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not in favorites"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleListFavorites 處理 GET /favorites
func HandleListFavorites(favorites Favorites) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}

		recipes, err := favorites.GetUserFavorites(c.Request.Context(), uid)
		if err != nil {
			common.LogError("讀取收藏失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load favorites"})
			return
		}
		if recipes == nil {
			recipes = []recipeService.Recipe{}
		}

		c.JSON(http.StatusOK, gin.H{"recipes": recipes})
	}
}
