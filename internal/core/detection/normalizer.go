package detection

// Normalize 將原始偵測結果轉為去重後的食材紀錄。
// 每個有對應標籤的類別只保留第一筆（依輸入順序，不是信心值排序），
// 沒有對應標籤的類別直接捨棄；輸出順序為各類別首次出現的順序。
func Normalize(detections []Detection) []NamedIngredient {
	seen := make(map[int]bool, len(detections))
	ingredients := make([]NamedIngredient, 0, len(detections))

	for _, det := range detections {
		if seen[det.ClassID] {
			continue
		}
		name, ok := LabelName(det.ClassID)
		if !ok {
			continue
		}
		seen[det.ClassID] = true
		ingredients = append(ingredients, NamedIngredient{
			Name:       name,
			Confidence: det.Confidence,
			BBox:       det.BBox,
		})
	}

	return ingredients
}

// Names 取出食材名稱列表，順序與輸入一致
func Names(ingredients []NamedIngredient) []string {
	names := make([]string, len(ingredients))
	for i, ing := range ingredients {
		names[i] = ing.Name
	}
	return names
}
