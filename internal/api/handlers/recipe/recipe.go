package recipe

import (
	"context"
	"net/http"

	"recipe-finder/internal/api/middleware"
	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IngredientStore 會話食材儲存介面，由 session.Store 實作
type IngredientStore interface {
	Get(ctx context.Context, sessionID string) ([]string, error)
}

// Matcher 食譜匹配服務介面，由 recipe.Matcher 實作
type Matcher interface {
	Match(ctx context.Context, names []string) []recipeService.RecipeMatch
}

// RecipesResponse 排名食譜列表響應
type RecipesResponse struct {
	Ingredients []string                   `json:"ingredients"`
	Recipes     []recipeService.RecipeMatch `json:"recipes"`
}

// HandleRecipes 處理 GET /recipes。
// 讀取會話食材集合並回傳排名後的食譜；集合為空時回傳用戶端錯誤。
func HandleRecipes(store IngredientStore, matcher Matcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := middleware.SessionID(c)
		names, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			common.LogError("讀取會話食材失敗", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}

		if len(names) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No ingredients detected. Please upload an image first.",
			})
			return
		}

		// 資料層失敗時 Match 會降級為空列表，這裡不會看到錯誤
		matches := matcher.Match(c.Request.Context(), names)

		c.JSON(http.StatusOK, RecipesResponse{
			Ingredients: names,
			Recipes:     matches,
		})
	}
}
