package detection

// Detection 模型單筆輸出：類別、信心值、邊界框。
// 僅在單次推論內有效，不做持久化。
type Detection struct {
	ClassID    int       `json:"class"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"` // [x1, y1, x2, y2]
}

// NamedIngredient 由 Detection 經標籤表對應出的食材紀錄，
// 每個可對應的類別只保留一筆。
type NamedIngredient struct {
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
}
