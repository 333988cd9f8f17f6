package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRecipeNotFound 查無此食譜
var ErrRecipeNotFound = errors.New("recipe not found")

// FavoritesRepository 使用者收藏的資料存取層，與食譜查詢共用連線池
type FavoritesRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewFavoritesRepository 創建收藏資料存取層
func NewFavoritesRepository(db *sql.DB, queryTimeout time.Duration) *FavoritesRepository {
	return &FavoritesRepository{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

// GetRecipeByID 依 ID 取得食譜
func (r *FavoritesRepository) GetRecipeByID(ctx context.Context, recipeID int64) (*Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	const q = `SELECT recipe_id, name, time, calories FROM recipes WHERE recipe_id = $1`
	var rec Recipe
	err := r.db.QueryRowContext(ctx, q, recipeID).Scan(&rec.RecipeID, &rec.Name, &rec.Time, &rec.Calories)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get recipe by id: %w", err)
	}
	return &rec, nil
}

// AddFavorite 將食譜加入使用者收藏，重複加入不是錯誤
func (r *FavoritesRepository) AddFavorite(ctx context.Context, userID string, recipeID int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	const q = `
INSERT INTO favorites (user_id, recipe_id)
VALUES ($1, $2)
ON CONFLICT (user_id, recipe_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, q, userID, recipeID); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite 將食譜自使用者收藏移除，回傳是否真的有移除
func (r *FavoritesRepository) RemoveFavorite(ctx context.Context, userID string, recipeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	const q = `DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2`
	result, err := r.db.ExecContext(ctx, q, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove favorite rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetUserFavorites 取得使用者收藏的食譜列表
func (r *FavoritesRepository) GetUserFavorites(ctx context.Context, userID string) ([]Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	const q = `
SELECT r.recipe_id, r.name, r.time, r.calories
FROM recipes r
JOIN favorites f ON r.recipe_id = f.recipe_id
WHERE f.user_id = $1
ORDER BY r.recipe_id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("get user favorites: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(&rec.RecipeID, &rec.Name, &rec.Time, &rec.Calories); err != nil {
			return nil, fmt.Errorf("scan favorite recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite recipes: %w", err)
	}

	return recipes, nil
}
