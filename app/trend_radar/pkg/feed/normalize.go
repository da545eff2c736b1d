package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

// 摘要最大长度（按字符计）
const snippetMaxRunes = 200

// Google Trends RSS 的扩展命名空间
const trendsNS = "ht"

// Normalize 把解析后的 RSS 条目转换为候选项，只保留前 limit 条有标题的条目（limit<=0 不截断）。
// 不做去重，保持原有顺序。
func Normalize(entries []*gofeed.Item, category string, limit int) []model.CandidateItem {
	return normalize(entries, category, limit, nil)
}

// enrichFunc 在条目没有摘要时根据原文链接补充摘要
type enrichFunc func(link string) string

func normalize(entries []*gofeed.Item, category string, limit int, enrich enrichFunc) []model.CandidateItem {
	size := len(entries)
	if limit > 0 && limit < size {
		size = limit
	}
	items := make([]model.CandidateItem, 0, size)

	for _, e := range entries {
		if limit > 0 && len(items) >= limit {
			break
		}
		if e == nil {
			continue
		}
		title := strings.TrimSpace(e.Title)
		if title == "" {
			continue
		}

		snippet := snippetOf(e)
		if snippet == "" && enrich != nil && e.Link != "" {
			snippet = truncate(collapseSpace(enrich(e.Link)), snippetMaxRunes)
		}

		items = append(items, model.CandidateItem{
			Title:          title,
			TrafficHint:    trafficOf(e),
			Snippet:        snippet,
			SourceCategory: category,
		})
	}
	return items
}

// trafficOf 读取 <ht:approx_traffic>
func trafficOf(e *gofeed.Item) string {
	return extValue(e.Extensions, trendsNS, "approx_traffic")
}

// snippetOf 依次尝试 description、content、Trends 的 news_item_title
func snippetOf(e *gofeed.Item) string {
	for _, raw := range []string{e.Description, e.Content} {
		if s := truncate(htmlToText(raw), snippetMaxRunes); s != "" {
			return s
		}
	}

	if news := e.Extensions[trendsNS]["news_item"]; len(news) > 0 {
		if t := news[0].Children["news_item_title"]; len(t) > 0 {
			return truncate(htmlToText(t[0].Value), snippetMaxRunes)
		}
	}
	return ""
}

func extValue(exts ext.Extensions, ns, name string) string {
	if exts == nil {
		return ""
	}
	vals := exts[ns][name]
	if len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0].Value)
}

// htmlToText 去掉摘要中的 HTML 标签，Google News 的 description 是一段 <a>/<font> 片段
func htmlToText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "<") {
		return collapseSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseSpace(s)
	}
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate 按字符截断，避免截断 UTF-8 多字节字符
func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
