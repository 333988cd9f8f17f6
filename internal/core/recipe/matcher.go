package recipe

import (
	"context"

	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Finder 依食材集合查詢排名食譜，由 Repository 實作
type Finder interface {
	FindByIngredients(ctx context.Context, names []string) ([]RecipeMatch, error)
}

// Matcher 食譜匹配服務。
// 資料存取失敗時回傳空列表而不是把錯誤往上傳：
// 呼叫端只靠空列表區分「沒有匹配」，這個有損的邊界契約必須原樣保留。
type Matcher struct {
	finder Finder
}

// NewMatcher 創建食譜匹配服務
func NewMatcher(finder Finder) *Matcher {
	return &Matcher{
		finder: finder,
	}
}

// Match 依會話中的食材集合回傳排名後的食譜列表
func (m *Matcher) Match(ctx context.Context, names []string) []RecipeMatch {
	if len(names) == 0 {
		return []RecipeMatch{}
	}

	matches, err := m.finder.FindByIngredients(ctx, names)
	if err != nil {
		// 降級為空結果；完整錯誤只進日誌，不出邊界
		common.LogError("食譜查詢失敗，降級為空結果",
			zap.String("階段", "recipe_match"),
			zap.Int("食材數", len(names)),
			zap.String("診斷", common.Truncate(err.Error(), 200)),
		)
		return []RecipeMatch{}
	}

	if matches == nil {
		matches = []RecipeMatch{}
	}

	common.LogInfo("食譜匹配完成",
		zap.Int("食材數", len(names)),
		zap.Int("食譜數", len(matches)),
	)
	return matches
}
