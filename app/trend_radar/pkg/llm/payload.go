package llm

import "strings"

// ExtractJSONPayload 从模型输出中取出 JSON 文本：去掉首尾空白和 ``` 代码块标记，
// 如果前后还有说明文字，只保留最外层的 [...] 或 {...}
func ExtractJSONPayload(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.HasPrefix(s, "```") {
		// 去掉首行（可能带语言标记，如 ```json）
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimLeft(s[3:], "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		}
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}

	if s == "" || s[0] == '[' || s[0] == '{' {
		return s
	}
	return outermostSpan(s)
}

// outermostSpan 在混有说明文字的输出中截取第一个开括号到对应最后一个闭括号之间的内容
func outermostSpan(s string) string {
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return s
	}
	closer := byte(']')
	if s[start] == '{' {
		closer = '}'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return s
	}
	return s[start : end+1]
}
