// Package render 把趋势结果渲染为 HTML 看板，命令行和展示服务共用同一个模板。
package render

import (
	"html/template"
	"io"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

// NavItem 分类导航
type NavItem struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

// Page 模板数据
type Page struct {
	Title       string
	Label       string
	GeneratedAt string
	Result      model.Result
	Nav         []NavItem
}

// NewPage 组装页面数据；hrefFor 为 nil 时不显示导航（静态文件）
func NewPage(category source.Category, r model.Result, hrefFor func(source.Category) string) Page {
	p := Page{
		Title:       "台灣熱搜趨勢雷達",
		Label:       category.Label(),
		GeneratedAt: r.GeneratedAt.In(taipei).Format("2006-01-02 15:04"),
		Result:      r,
	}
	if hrefFor != nil {
		for _, c := range source.All() {
			p.Nav = append(p.Nav, NavItem{
				ID:     string(c),
				Label:  c.Label(),
				Href:   hrefFor(c),
				Active: c == category,
			})
		}
	}
	return p
}

var taipei = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return time.FixedZone("CST", 8*3600)
	}
	return loc
}()

var tpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"scoreClass": func(score int) string {
		switch {
		case score >= 80:
			return "score-high"
		case score >= 50:
			return "score-mid"
		default:
			return "score-low"
		}
	},
	"rank": func(i int) int { return i + 1 },
}).Parse(dashboardTpl))

// HTML 渲染看板
func HTML(w io.Writer, p Page) error {
	return tpl.Execute(w, p)
}

const dashboardTpl = `<!DOCTYPE html>
<html lang="zh-TW">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} | {{.Label}}</title>
    <style>
        :root {
            --primary-color: #2563eb;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", "PingFang TC", "Microsoft JhengHei", sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 24px; }
        h1 { font-size: 2.2rem; margin: 0 0 8px 0; }
        .date-info { color: var(--text-secondary); }
        nav { display: flex; flex-wrap: wrap; gap: 8px; justify-content: center; margin-bottom: 32px; }
        nav a { padding: 6px 14px; border-radius: 20px; border: 1px solid var(--border-color); color: var(--text-main); text-decoration: none; background: #fff; }
        nav a.active { background: var(--primary-color); border-color: var(--primary-color); color: #fff; }
        .trend-card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 20px 24px;
            margin-bottom: 20px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.05);
            border: 1px solid var(--border-color);
        }
        .trend-header { display: flex; justify-content: space-between; align-items: center; gap: 12px; }
        .trend-title { font-size: 1.4rem; font-weight: 800; color: #0f172a; }
        .trend-rank { color: var(--text-secondary); margin-right: 8px; }
        .trend-meta { color: var(--text-secondary); font-size: 0.9rem; }
        .score { padding: 4px 12px; border-radius: 20px; font-weight: bold; white-space: nowrap; }
        .score-high { background: #fee2e2; color: #991b1b; }
        .score-mid { background: #fef3c7; color: #92400e; }
        .score-low { background: #e0f2fe; color: #075985; }
        .bar { height: 6px; background: #f1f5f9; border-radius: 3px; margin: 12px 0; overflow: hidden; }
        .bar span { display: block; height: 100%; background: var(--primary-color); }
        .tags span { display: inline-block; margin: 4px 6px 0 0; padding: 2px 10px; border-radius: 12px; background: #eff6ff; color: #1d4ed8; font-size: 0.85rem; }
        .empty { background: #fff; border: 1px dashed #cbd5e1; border-radius: 12px; padding: 24px; }
        .empty pre { white-space: pre-wrap; color: var(--text-secondary); font-size: 0.85rem; }
    </style>
</head>
<body>
<div class="container">
    <header>
        <h1>{{.Title}}</h1>
        <div class="date-info">{{.Label}} · 更新於 {{.GeneratedAt}}</div>
    </header>
    {{if .Nav}}
    <nav>
        {{range .Nav}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}
    </nav>
    {{end}}
    {{if .Result.Records}}
    {{range $i, $r := .Result.Records}}
    <div class="trend-card">
        <div class="trend-header">
            <div>
                <span class="trend-rank">#{{rank $i}}</span>
                <span class="trend-title">{{$r.Keyword}}</span>
                <div class="trend-meta">{{$r.Category}}{{if $r.VolumeLabel}} · 搜尋量 {{$r.VolumeLabel}}{{end}}</div>
            </div>
            <span class="score {{scoreClass $r.Score}}">{{$r.Score}}</span>
        </div>
        <div class="bar"><span style="width: {{$r.Score}}%"></span></div>
        <p>{{$r.Summary}}</p>
        <div class="tags">{{range $r.Hashtags}}<span>{{.}}</span>{{end}}</div>
    </div>
    {{end}}
    {{else}}
    <div class="empty">
        <h3>目前沒有可顯示的趨勢</h3>
        <p>所有新聞來源或模型都未回傳有效結果，以下為診斷紀錄：</p>
        <pre>{{range .Result.Diagnostics}}{{.}}
{{end}}</pre>
    </div>
    {{end}}
</div>
</body>
</html>
`
