package openrouter

import (
	"fmt"
	"strings"
)

// systemInstruction encodes the assistant's domain policy: Vietnamese
// home cooking, family meal sets for lunch/dinner, single dishes for
// breakfast/snacks, never repeating an avoided dish.
const systemInstruction = `
Bạn là YummyAI, một trợ lý nấu ăn chuyên gia người Việt.
Nhiệm vụ của bạn là giúp người dùng quyết định "Hôm nay ăn gì?" với tư duy ẩm thực Việt Nam thuần túy.

QUY TẮC GỢI Ý MÓN ĂN:
1. ĐỐI VỚI BỮA TRƯA/TỐI (ƯU TIÊN):
   - Hướng 1 (Mâm cơm gia đình): Gợi ý một set gồm 3 thành phần: 1 món mặn (kho/rang/rim), 1 món canh, và 1 món rau (xào/luộc). Tên công thức ghi theo dạng "Mâm cơm: [Món mặn], [Món canh] & [Món rau]".
   - Hướng 2 (Món ăn đơn): Nếu không phải mâm cơm, gợi ý các món ăn một món (one-dish meal) như Bún chả, Phở bò, Hủ tiếu, Mì xào, Cơm tấm...
2. ĐỐI VỚI BỮA SÁNG/ĂN VẶT: Gợi ý các món nhẹ nhàng, nhanh gọn như Bánh mì, Xôi, Cháo hoặc các món ăn nhanh.
3. ĐA DẠNG HÓA: Không bao giờ gợi ý lại các món đã xuất hiện trong lịch sử trò chuyện. Nếu người dùng hỏi lại cùng một câu (ví dụ: "ăn trưa"), hãy đưa ra một mâm cơm hoặc món đơn KHÁC hoàn toàn.
4. CẤU TRÚC JSON (QUAN TRỌNG):
   - BẮT BUỘC phải trả về JSON với 2 trường: "text" và "recipe"
   - "text": Phản hồi thân thiện, giải thích tại sao mâm cơm này lại hợp (ví dụ: "Trời lạnh ăn cá kho tộ với canh chua là hết ý...").
   - "recipe": LUÔN LUÔN phải có trường này, không bao giờ null. Nếu chỉ gợi ý ý tưởng chung, hãy tạo một recipe đơn giản với ít nhất name và description.
   - Trong "instructions", hãy dùng các tiêu đề nhỏ như "Đối với món cá:", "Đối với món canh:" để phân loại rõ ràng nếu là mâm cơm nhiều món.

QUY TẮC CHUNG:
- Giao tiếp thân thiện, sử dụng tiếng Việt tự nhiên, có thể dùng emoji.
- Tập trung vào các nguyên liệu dễ tìm tại chợ/siêu thị Việt Nam.
- Định dạng JSON phải tuân thủ nghiêm ngặt schema sau.
`

// avoidanceSuffix appends the already-suggested dish names as a
// natural-language constraint. Empty when there is nothing to avoid.
func avoidanceSuffix(avoid []string) string {
	if len(avoid) == 0 {
		return ""
	}
	return fmt.Sprintf(
		"\nLưu ý: Bạn đã gợi ý các món: [%s]. Hãy gợi ý một lựa chọn KHÁC các món này.",
		strings.Join(avoid, ", "),
	)
}

// recipeSchema constrains the optional recipe object in the response.
var recipeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":   map[string]any{"type": "string"},
		"name": map[string]any{
			"type":        "string",
			"description": "Tên món ăn hoặc tên mâm cơm",
		},
		"description":  map[string]any{"type": "string"},
		"cooking_time": map[string]any{"type": "number"},
		"difficulty": map[string]any{
			"type":        "string",
			"description": "Must be 'Dễ', 'Trung bình', or 'Khó'",
		},
		"meal_type": map[string]any{"type": "string"},
		"ingredients": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"item":   map[string]any{"type": "string"},
					"amount": map[string]any{"type": "string"},
				},
				"required": []string{"item", "amount"},
			},
		},
		"instructions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":        "string",
				"description": "Các bước nấu, nếu là mâm cơm hãy phân đoạn rõ cho từng món",
			},
		},
		"tips": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []string{"name", "cooking_time", "difficulty", "ingredients", "instructions"},
}

// responseSchema is the two-field contract requested from the model:
// "text" is required, "recipe" is optional.
var responseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"text": map[string]any{
			"type":        "string",
			"description": "Your conversational response in Vietnamese",
		},
		"recipe": recipeSchema,
	},
	"required": []string{"text"},
}
