package domain

import "time"

// Trend 单个趋势话题
type Trend struct {
	ID          int
	Keyword     string
	Category    string
	Score       int
	VolumeLabel string
	Summary     string
	Hashtags    []string
}

// TrendList 某个分类的趋势列表
type TrendList struct {
	Category    string
	Label       string
	GeneratedAt time.Time
	Trends      []*Trend
	// Diagnostics 只在没有话题时展示
	Diagnostics []string
}

// Category 导航用的分类信息
type Category struct {
	ID    string
	Label string
}
