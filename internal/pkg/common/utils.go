package common

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// EncodeLatin1 將原始位元組逐一映射為等值的 Unicode 碼位。
// 前端沿用舊版介面，期望 annotated_image 是 latin-1 解碼後的字串，
// 這裡重現同樣的逐位元組映射。
func EncodeLatin1(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

// Truncate 截斷字串用於日誌輸出，避免過長的診斷訊息。
// 截斷點退回到 rune 邊界，不會把多位元組字元切成半個
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
