package recipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strings"
	"testing"

	"recipe-finder/internal/api/middleware"
	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

const testSessionID = "test-session"

// stubStore 固定內容的會話儲存
type stubStore struct {
	names []string
	err   error
}

func (s *stubStore) Get(ctx context.Context, sessionID string) ([]string, error) {
	return s.names, s.err
}

// fixtureRecipe 測試用食譜與其食材
type fixtureRecipe struct {
	recipe      recipeService.Recipe
	ingredients []string
}

// fixtureMatcher 以內連結語意在記憶體中重演排名查詢：
// 至少重疊一項才入列，依重疊數遞減、時間遞增、熱量遞增排序。
type fixtureMatcher struct {
	recipes []fixtureRecipe
}

func (m *fixtureMatcher) Match(ctx context.Context, names []string) []recipeService.RecipeMatch {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	matches := []recipeService.RecipeMatch{}
	for _, fr := range m.recipes {
		count := 0
		for _, ing := range fr.ingredients {
			if want[ing] {
				count++
			}
		}
		if count == 0 {
			continue
		}
		matches = append(matches, recipeService.RecipeMatch{
			RecipeID:   fr.recipe.RecipeID,
			Name:       fr.recipe.Name,
			MatchCount: count,
			Time:       fr.recipe.Time,
			Calories:   fr.recipe.Calories,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchCount != matches[j].MatchCount {
			return matches[i].MatchCount > matches[j].MatchCount
		}
		if matches[i].Time != matches[j].Time {
			return matches[i].Time < matches[j].Time
		}
		return matches[i].Calories < matches[j].Calories
	})
	return matches
}

func newRecipesRouter(store IngredientStore, matcher Matcher) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, testSessionID)
		c.Next()
	})
	router.GET("/recipes", HandleRecipes(store, matcher))
	return router
}

func getRecipes(t *testing.T, store IngredientStore, matcher Matcher) (*httptest.ResponseRecorder, RecipesResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	newRecipesRouter(store, matcher).ServeHTTP(w, req)

	var resp RecipesResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
	}
	return w, resp
}

func TestHandleRecipesRankedByOverlap(t *testing.T) {
	matcher := &fixtureMatcher{recipes: []fixtureRecipe{
		{recipe: recipeService.Recipe{RecipeID: 1, Name: "A", Time: 30, Calories: 400},
			ingredients: []string{"tomato", "onion", "garlic"}},
		{recipe: recipeService.Recipe{RecipeID: 2, Name: "B", Time: 10, Calories: 100},
			ingredients: []string{"tomato", "spinach"}},
		{recipe: recipeService.Recipe{RecipeID: 3, Name: "C", Time: 5, Calories: 50},
			ingredients: []string{"cabbage"}},
	}}
	store := &stubStore{names: []string{"tomato", "onion"}}

	w, resp := getRecipes(t, store, matcher)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// A 重疊兩項排最前，B 重疊一項次之，C 零重疊不出現
	if len(resp.Recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(resp.Recipes))
	}
	if resp.Recipes[0].Name != "A" || resp.Recipes[0].MatchCount != 2 {
		t.Errorf("expected A first with match_count 2, got %+v", resp.Recipes[0])
	}
	if resp.Recipes[1].Name != "B" || resp.Recipes[1].MatchCount != 1 {
		t.Errorf("expected B second with match_count 1, got %+v", resp.Recipes[1])
	}

	// matchCount 不會超過會話食材數
	for _, r := range resp.Recipes {
		if r.MatchCount > len(store.names) {
			t.Errorf("recipe %s: match_count %d exceeds ingredient set size %d",
				r.Name, r.MatchCount, len(store.names))
		}
	}
}

func TestHandleRecipesTieBreaks(t *testing.T) {
	matcher := &fixtureMatcher{recipes: []fixtureRecipe{
		{recipe: recipeService.Recipe{RecipeID: 1, Name: "SlowLight", Time: 40, Calories: 100},
			ingredients: []string{"tomato"}},
		{recipe: recipeService.Recipe{RecipeID: 2, Name: "FastHeavy", Time: 10, Calories: 900},
			ingredients: []string{"tomato"}},
		{recipe: recipeService.Recipe{RecipeID: 3, Name: "FastLight", Time: 10, Calories: 200},
			ingredients: []string{"tomato"}},
	}}
	store := &stubStore{names: []string{"tomato"}}

	w, resp := getRecipes(t, store, matcher)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// 同重疊數先比時間（遞增），再比熱量（遞增）
	wantOrder := []string{"FastLight", "FastHeavy", "SlowLight"}
	for i, name := range wantOrder {
		if resp.Recipes[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, resp.Recipes[i].Name)
		}
	}
}

func TestHandleRecipesEmptySession(t *testing.T) {
	w, _ := getRecipes(t, &stubStore{names: nil}, &fixtureMatcher{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "upload an image first") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestHandleRecipesEchoesIngredients(t *testing.T) {
	store := &stubStore{names: []string{"carrot", "garlic"}}
	w, resp := getRecipes(t, store, &fixtureMatcher{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(resp.Ingredients) != 2 || resp.Ingredients[0] != "carrot" {
		t.Errorf("unexpected ingredients echo: %v", resp.Ingredients)
	}
	if resp.Recipes == nil || len(resp.Recipes) != 0 {
		t.Errorf("expected empty recipes list, got %v", resp.Recipes)
	}
}
