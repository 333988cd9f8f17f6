package common

import "errors"

// 錯誤響應中的 code 欄位值
const (
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 504
)

// 偵測管線的哨兵錯誤，呼叫端以 errors.Is 區分錯誤種類
var (
	// ErrImageDecode 圖片無法解碼（用戶端錯誤）
	ErrImageDecode = errors.New("image cannot be decoded")
	// ErrDetection 模型調用失敗（伺服器錯誤），與「零偵測結果」不同
	ErrDetection = errors.New("detection model invocation failed")
	// ErrNoIngredientsDetected 圖片解碼與推論都成功，但沒有任何可對應的食材
	ErrNoIngredientsDetected = errors.New("no ingredients detected")
	// ErrDataAccess 資料存取失敗；在 matcher 邊界被吸收為空結果，不會傳到 HTTP 層
	ErrDataAccess = errors.New("data access failed")
)
