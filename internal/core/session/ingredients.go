package session

// Merge 將新偵測到的食材名稱併入既有集合。
// 既有名稱維持原本順序，新名稱依輸入順序附加在後，不產生重複；
// 回傳新的切片，不修改輸入。
func Merge(existing []string, detected []string) []string {
	merged := make([]string, 0, len(existing)+len(detected))
	seen := make(map[string]bool, len(existing)+len(detected))

	for _, name := range existing {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		merged = append(merged, name)
	}
	for _, name := range detected {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		merged = append(merged, name)
	}

	return merged
}

// Add 將單一食材名稱加入集合，已存在時不做任何變更（冪等，不是錯誤）
func Add(existing []string, name string) []string {
	if name == "" {
		return existing
	}
	for _, n := range existing {
		if n == name {
			return existing
		}
	}
	return append(append([]string(nil), existing...), name)
}
