package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
)

// CandidateItem 一条送入 LLM 的标准化候选新闻，空字符串表示来源未提供该字段
type CandidateItem struct {
	Title          string `json:"title"`
	TrafficHint    string `json:"traffic,omitempty"` // 热度提示，如 "20萬+"
	Snippet        string `json:"snippet,omitempty"`
	SourceCategory string `json:"source"`
}

// TrendRecord LLM 输出的单个趋势话题
type TrendRecord struct {
	ID          int      `json:"id"`
	Keyword     string   `json:"keyword"`
	Category    string   `json:"category"`
	Score       int      `json:"score"` // 0-100 关注度
	VolumeLabel string   `json:"volume_label,omitempty"`
	Summary     string   `json:"summary"`
	Hashtags    []string `json:"hashtags"`

	// 模型输出中缺少 score 字段，Sanitize 会丢弃
	scoreMissing bool
}

// UnmarshalJSON 容忍模型输出的小数或字符串分数，四舍五入为整数
func (r *TrendRecord) UnmarshalJSON(data []byte) error {
	type plain TrendRecord
	aux := struct {
		*plain
		Score json.RawMessage `json:"score"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.Score)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		r.Score = 0
		r.scoreMissing = true
		return nil
	}
	score, err := parseScore(raw)
	if err != nil {
		return err
	}
	r.Score = score
	r.scoreMissing = false
	return nil
}

func parseScore(raw []byte) (int, error) {
	var num json.Number
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		num = json.Number(strings.TrimSpace(s))
	} else if err := json.Unmarshal(raw, &num); err != nil {
		return 0, fmt.Errorf("score: %w", err)
	}
	f, err := strconv.ParseFloat(num.String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("score is not numeric: %s", raw)
	}
	// 先截断到合法范围，避免超大数转换溢出
	f = math.Max(MinScore, math.Min(MaxScore, f))
	return int(math.Round(f)), nil
}

const (
	MinScore = 0
	MaxScore = 100
)

// Sanitize 校验模型输出：丢弃空关键字和缺少分数的记录、分数截断到 [0,100]、hashtags 不为 nil，保持原有顺序
func Sanitize(records []TrendRecord) []TrendRecord {
	out := make([]TrendRecord, 0, len(records))
	for _, r := range records {
		r.Keyword = strings.TrimSpace(r.Keyword)
		if r.Keyword == "" {
			continue
		}
		if r.scoreMissing {
			logger.Log.Warnf("丢弃缺少 score 的话题: %s", r.Keyword)
			continue
		}
		if r.Score < MinScore {
			r.Score = MinScore
		}
		if r.Score > MaxScore {
			r.Score = MaxScore
		}
		if r.Hashtags == nil {
			r.Hashtags = []string{}
		}
		out = append(out, r)
	}
	return out
}

// Result 一次分析的完整结果，交给展示层使用
type Result struct {
	Category    string        `json:"category"`
	Records     []TrendRecord `json:"records"`
	Diagnostics []string      `json:"diagnostics,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// Empty 结果中是否没有任何可展示的话题
func (r Result) Empty() bool {
	return len(r.Records) == 0
}
