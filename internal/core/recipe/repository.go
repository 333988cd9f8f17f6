package recipe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// matchQueryTemplate 依食材重疊數排名的查詢。
// %s 會被替換為 $1..$N 佔位符 — 食材名稱一律走參數綁定，
// 絕不拼接進 SQL 字串。
const matchQueryTemplate = `
WITH user_ingredients AS (
    SELECT ingr_id
    FROM ingredients
    WHERE ingr_name IN (%s)
)
SELECT r.recipe_id, r.name, COUNT(DISTINCT ri.ingr_id) AS match_count, r.time, r.calories
FROM recipes r
JOIN recipe_ingredient ri ON r.recipe_id = ri.recipe_id
JOIN user_ingredients ui ON ri.ingr_id = ui.ingr_id
GROUP BY r.recipe_id, r.name, r.time, r.calories
ORDER BY match_count DESC, r.time ASC, r.calories ASC`

// Repository 食譜資料存取層，走 database/sql + pgx driver
type Repository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewRepository 創建食譜資料存取層
func NewRepository(db *sql.DB, queryTimeout time.Duration) *Repository {
	return &Repository{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

// placeholders 產生 $1..$n 的佔位符字串
func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

// FindByIngredients 找出與給定食材集合至少重疊一項的食譜，
// 依重疊數遞減、時間遞增、熱量遞增排序（排序交給資料庫）。
// 內連結語意：零重疊的食譜不會出現在結果中。
func (r *Repository) FindByIngredients(ctx context.Context, names []string) ([]RecipeMatch, error) {
	if len(names) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := fmt.Sprintf(matchQueryTemplate, placeholders(len(names)))
	args := make([]interface{}, len(names))
	for i, name := range names {
		args[i] = name
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes by ingredients: %w", err)
	}
	defer rows.Close()

	var matches []RecipeMatch
	for rows.Next() {
		var m RecipeMatch
		if err := rows.Scan(&m.RecipeID, &m.Name, &m.MatchCount, &m.Time, &m.Calories); err != nil {
			return nil, fmt.Errorf("scan recipe match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe matches: %w", err)
	}

	return matches, nil
}

// Ping 檢查資料庫連線，供就緒探針使用
func (r *Repository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()
	return r.db.PingContext(ctx)
}
