// Package source 维护分类到候选 RSS 地址的映射。
package source

import (
	"net/url"
	"strings"
)

// Category 新闻分类
type Category string

const (
	Home          Category = "home"
	Politics      Category = "politics"
	Finance       Category = "finance"
	Tech          Category = "tech"
	Entertainment Category = "entertainment"
	Sports        Category = "sports"
	International Category = "international"
	Health        Category = "health"
)

const (
	googleNewsBase = "https://news.google.com/rss"
	trendsRSS      = "https://trends.google.com/trending/rss?geo=TW"
	// 查询时间窗口，只要最近两天的结果
	recencyWindow = "when:2d"
)

// 台湾繁体中文版 Google News 的地区参数
var localeParams = url.Values{
	"hl":   {"zh-TW"},
	"gl":   {"TW"},
	"ceid": {"TW:zh-Hant"},
}

// entry 单个分类的来源定义
type entry struct {
	label string
	query string // 为空表示没有搜索型主来源
	topic string // 固定话题地址（相对 googleNewsBase 的路径）
}

var entries = map[Category]entry{
	Home:          {label: "焦點"},
	Politics:      {label: "政治", query: "政治 OR 立法院 OR 總統府", topic: "/headlines/section/topic/NATION"},
	Finance:       {label: "財經", query: "台股 OR 財經 OR 經濟", topic: "/topics/CAAqKggKIiRDQkFTRlFvSUwyMHZNRGx6TVdZU0FBUWlHZ0pKVERNU0FBUW"},
	Tech:          {label: "科技", query: "科技 OR 半導體 OR AI", topic: "/topics/CAAqKggKIiRDQkFTRlFvSUwyMHZNRGRqTVhZU0FBUWlHZ0pKVERNU0FBUW"},
	Entertainment: {label: "娛樂", query: "娛樂 OR 藝人 OR 電影", topic: "/headlines/section/topic/ENTERTAINMENT"},
	Sports:        {label: "體育", query: "體育 OR 中華隊 OR 職棒", topic: "/headlines/section/topic/SPORTS"},
	International: {label: "國際", query: "國際 OR 美國 OR 中國", topic: "/headlines/section/topic/WORLD"},
	Health:        {label: "健康", query: "健康 OR 醫療 OR 疫情", topic: "/headlines/section/topic/HEALTH"},
}

// 展示顺序
var ordered = []Category{Home, Politics, Finance, Tech, Entertainment, Sports, International, Health}

// Parse 规范化用户输入，无法识别时回退到 Home
func Parse(s string) Category {
	if c, ok := Lookup(s); ok {
		return c
	}
	return Home
}

// Lookup 与 Parse 相同，但会报告输入是否是已知分类
func Lookup(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	_, ok := entries[c]
	return c, ok
}

// All 按展示顺序返回全部分类
func All() []Category {
	return append([]Category(nil), ordered...)
}

// Label 分类的中文名称
func (c Category) Label() string {
	if e, ok := entries[c]; ok {
		return e.label
	}
	return entries[Home].label
}

// IsAggregate 是否为聚合视图（所有来源都要尝试并合并）
func IsAggregate(c Category) bool {
	return Parse(string(c)) == Home
}

// URLs 返回分类的候选地址，越具体/越可靠的越靠前，结果总是非空
func URLs(c Category) []string {
	c = Parse(string(c))
	if c == Home {
		return []string{
			withLocale(googleNewsBase, nil),
			trendsRSS,
			withLocale(googleNewsBase+entries[Finance].topic, nil),
			withLocale(googleNewsBase+entries[Tech].topic, nil),
		}
	}

	e := entries[c]
	return []string{
		SearchURL(e.query),
		withLocale(googleNewsBase+e.topic, nil),
	}
}

// SearchURL 构造 Google News 搜索地址：限定最近两天并按时间排序
func SearchURL(query string) string {
	q := strings.TrimSpace(query) + " " + recencyWindow
	return withLocale(googleNewsBase+"/search", url.Values{
		"q":       {q},
		"scoring": {"n"},
	})
}

func withLocale(base string, extra url.Values) string {
	v := url.Values{}
	for k, vs := range localeParams {
		v[k] = append([]string(nil), vs...)
	}
	for k, vs := range extra {
		v[k] = vs
	}
	return base + "?" + v.Encode()
}
