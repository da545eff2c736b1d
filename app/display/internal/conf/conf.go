package conf

type Bootstrap struct {
	Server *Server `json:"server"`
	Radar  *Radar  `json:"radar"`
}

type Server struct {
	Http *HTTP `json:"http"`
	Grpc *GRPC `json:"grpc"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type GRPC struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Radar struct {
	Llm         *LLM         `json:"llm"`
	Feed        *Feed        `json:"feed"`
	Cache       *Cache       `json:"cache"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type LLM struct {
	Provider        string   `json:"provider"`
	BaseUrl         string   `json:"base_url"`
	ApiKey          string   `json:"api_key"`
	Models          []string `json:"models"`
	Timeout         int32    `json:"timeout"`
	JsonMode        *bool    `json:"json_mode"`
	SafetyThreshold string   `json:"safety_threshold"`
	Language        string   `json:"language"`
}

type Feed struct {
	Timeout        int32    `json:"timeout"`
	UserAgents     []string `json:"user_agents"`
	Cookie         string   `json:"cookie"`
	AcceptLanguage string   `json:"accept_language"`
	JitterMs       int32    `json:"jitter_ms"`
	HomeCap        int32    `json:"home_cap"`
	TopicCap       int32    `json:"topic_cap"`
	EnrichSnippets bool     `json:"enrich_snippets"`
}

type Cache struct {
	Interval int32 `json:"interval"`
	Disabled bool  `json:"disabled"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
