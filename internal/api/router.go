package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	detectHandler "recipe-finder/internal/api/handlers/detect"
	"recipe-finder/internal/api/handlers/health"
	recipeHandler "recipe-finder/internal/api/handlers/recipe"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/detection"
	imageService "recipe-finder/internal/core/image"
	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/core/session"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置：涵蓋一次推論加一次標註
	timeoutDuration = 60 * time.Second
	// 連點上傳的去重視窗
	dedupWindow = 1 * time.Second
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, db *sql.DB, sessionStore *session.Store, detector *detection.Detector) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制：圖片上限加上 multipart 編碼的餘裕
	router.Use(middleware.BodySizeLimit(cfg.Image.MaxSizeBytes + 1<<20))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 會話 Cookie
	router.Use(middleware.Session(cfg.Redis.SessionTTL))

	// 初始化服務
	imgValidator := imageService.NewService(cfg.Image.MaxSizeBytes)
	scanSvc := detection.NewService(detector, imgValidator)
	if scanSvc == nil {
		common.LogError("Failed to initialize scan service")
		return nil, fmt.Errorf("failed to initialize scan service")
	}

	recipeRepo := recipeService.NewRepository(db, cfg.Database.QueryTimeout)
	matcher := recipeService.NewMatcher(recipeRepo)
	favoritesRepo := recipeService.NewFavoritesRepository(db, cfg.Database.QueryTimeout)

	common.LogInfo("Services initialized",
		zap.String("detector_url", cfg.Detector.BaseURL),
		zap.Duration("query_timeout", cfg.Database.QueryTimeout),
		zap.Duration("session_ttl", cfg.Redis.SessionTTL),
	)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		// 設置配置
		c.Set("config", cfg)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck(map[string]health.Pinger{
		"database": recipeRepo.Ping,
		"session":  sessionStore.Ping,
		"detector": detector.Health,
	}))
	router.GET("/live", health.LivenessCheck)

	// 偵測管線路由（沿用舊版前端的路徑）
	router.POST("/upload-image",
		middleware.Deduplication(dedupWindow),
		detectHandler.HandleImageUpload(scanSvc, sessionStore))
	router.POST("/add-ingredient", detectHandler.HandleAddIngredient(sessionStore))
	router.GET("/recipes", recipeHandler.HandleRecipes(sessionStore, matcher))

	// API 路由組
	api := router.Group("/api/v1")
	{
		api.GET("/ingredients", detectHandler.HandleListIngredients(sessionStore))

		favoritesGroup := api.Group("/favorites")
		{
			favoritesGroup.GET("", recipeHandler.HandleListFavorites(favoritesRepo))
			favoritesGroup.POST("/:recipe_id", recipeHandler.HandleAddFavorite(favoritesRepo))
			favoritesGroup.DELETE("/:recipe_id", recipeHandler.HandleRemoveFavorite(favoritesRepo))
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Image.MaxSizeBytes),
	)

	return router, nil
}
