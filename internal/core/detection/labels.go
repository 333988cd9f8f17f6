package detection

// ingredientLabels 將 YOLO 類別 ID 對應到食材名稱。
// 此表與訓練資料的類別順序綁定，不可變動；
// "patato" 是資料集中既有的拼法，屬於對外契約的一部分，保留原樣。
var ingredientLabels = map[int]string{
	0: "aubergine",
	1: "cabbage",
	2: "carrot",
	3: "cauliflower",
	4: "garlic",
	5: "green-pepper",
	6: "onion",
	7: "patato",
	8: "spinach",
	9: "tomato",
}

// LabelName 查詢類別 ID 對應的食材名稱
func LabelName(classID int) (string, bool) {
	name, ok := ingredientLabels[classID]
	return name, ok
}

// LabelCount 回傳可辨識的食材類別數
func LabelCount() int {
	return len(ingredientLabels)
}
