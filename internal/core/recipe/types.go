package recipe

// RecipeMatch 依食材重疊數排名的查詢結果列，計算得出，不落地
type RecipeMatch struct {
	RecipeID   int64   `json:"recipe_id"`
	Name       string  `json:"name"`
	MatchCount int     `json:"match_count"`
	Time       float64 `json:"time"`
	Calories   float64 `json:"calories"`
}

// Recipe 食譜基本資料
type Recipe struct {
	RecipeID int64   `json:"recipe_id"`
	Name     string  `json:"name"`
	Time     float64 `json:"time"`
	Calories float64 `json:"calories"`
}
