package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

// PromptFunc 根据分类和候选项生成提示词
type PromptFunc func(category source.Category, items []model.CandidateItem, language string) (string, error)

const schemaExample = `[
  {
    "id": 1,
    "keyword": "台積電法說會",
    "category": "財經",
    "score": 92,
    "volume_label": "20萬+",
    "summary": "50 字以內的短評，說明事件重點與影響，若有關鍵個股請特別點出。",
    "hashtags": ["#台積電", "#AI伺服器"]
  }
]`

// DefaultPrompt 默认提示词：角色与目标、数量要求、原始数据、处理要求、输出格式
func DefaultPrompt(category source.Category, items []model.CandidateItem, language string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("你是一位專業的台灣新聞輿情與市場趨勢分析師。")
	sb.WriteString("請閱讀以下來自不同頻道的台灣新聞標題與搜尋熱度資料，整理出目前最受關注的趨勢話題。\n\n")

	if source.IsAggregate(category) {
		sb.WriteString("請挑選 15-20 個彼此不同的熱門話題，盡量涵蓋政治、財經、科技、娛樂、體育、國際、健康等不同領域。\n\n")
	} else {
		fmt.Fprintf(&sb, "請聚焦於【%s】領域，挑選 10-15 個近期最活躍的話題。\n\n", category.Label())
	}

	sb.WriteString("原始新聞資料（JSON）：\n")
	sb.Write(buf.Bytes())
	sb.WriteString("\n")

	sb.WriteString("要求：\n")
	sb.WriteString("1. 只保留最近兩天內仍在發酵的事件，過時的新聞請忽略。\n")
	sb.WriteString("2. 同一事件的多則報導請合併成一個話題，不要重複。\n")
	sb.WriteString("3. 帶有 traffic 熱度數據的條目代表搜尋量大，請給予較高分數，並把該數據填入 volume_label。\n")
	sb.WriteString("4. score 為 0-100 的整數，代表話題熱度；請依 score 由高到低排序。\n")
	fmt.Fprintf(&sb, "5. keyword、category、summary、hashtags 一律使用%s。\n\n", language)

	sb.WriteString("請嚴格遵守以下 JSON 輸出格式（Array），直接輸出 JSON，不要包含任何 markdown 標記：\n")
	sb.WriteString(schemaExample)
	sb.WriteString("\n")
	return sb.String(), nil
}
