package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recipe-finder/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// Store 會話食材儲存，狀態放在 Redis。
// 生命週期完全交給 Redis 的 key 過期機制，沒有明確的清除操作。
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore 創建會話儲存
func NewStore(cfg *config.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{
		client: client,
		ttl:    cfg.SessionTTL,
	}, nil
}

// sessionKey 生成會話鍵
func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:ingredients:%s", sessionID)
}

// Get 讀取會話的食材集合；會話不存在時回傳空集合
func (s *Store) Get(ctx context.Context, sessionID string) ([]string, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session ingredients: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		// 壞掉的會話資料視同沒有資料
		return nil, nil
	}
	return names, nil
}

// Put 以新的集合取代會話原有的值，並重設存活時間
func (s *Store) Put(ctx context.Context, sessionID string, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to marshal session ingredients: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session ingredients: %w", err)
	}
	return nil
}

// Ping 檢查 Redis 連線，供就緒探針使用
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉 Redis 連線
func (s *Store) Close() error {
	return s.client.Close()
}
