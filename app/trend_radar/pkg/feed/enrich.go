package feed

import (
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/logger"
)

// readableSnippet 抓取原文并提取正文作为摘要，失败时返回空字符串
func readableSnippet(timeout time.Duration) enrichFunc {
	return func(link string) string {
		article, err := readability.FromURL(link, timeout)
		if err != nil {
			logger.Log.Debugf("原文抓取失败 [%s]: %v", link, err)
			return ""
		}
		if article.Excerpt != "" {
			return article.Excerpt
		}
		return article.TextContent
	}
}
