// Package suggestion holds the user-customizable quick-suggestion chips.
package suggestion

// QuickSuggestion is one tappable prompt chip, ordered by OrderIndex.
type QuickSuggestion struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Label      string `json:"label"`
	Prompt     string `json:"prompt"`
	OrderIndex int    `json:"order_index"`
}

// Defaults are seeded for a user whose suggestion list is empty.
var Defaults = []QuickSuggestion{
	{Label: "🍳 Ăn sáng", Prompt: "Gợi ý cho mình món ăn sáng đơn giản"},
	{Label: "🍱 Ăn trưa", Prompt: "Trưa nay ăn gì ngon nhỉ?"},
	{Label: "🍲 Ăn tối", Prompt: "Gợi ý món tối cho 2 người"},
	{Label: "⚡ Món nhanh", Prompt: "Món gì nấu nhanh dưới 15 phút?"},
	{Label: "🥗 Thanh đạm", Prompt: "Gợi ý món ăn thanh đạm, nhiều rau"},
	{Label: "🍜 Món nước", Prompt: "Mình muốn ăn món gì đó có nước dùng"},
}
