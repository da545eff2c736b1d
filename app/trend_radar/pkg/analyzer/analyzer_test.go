package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

type reply struct {
	text string
	err  error
}

// stubClient 按模型名称返回预设内容
type stubClient struct {
	replies map[string]reply
	calls   []string
	prompts []string
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Generate(_ context.Context, modelID, prompt string) (string, error) {
	s.calls = append(s.calls, modelID)
	s.prompts = append(s.prompts, prompt)
	r := s.replies[modelID]
	return r.text, r.err
}

var testItems = []model.CandidateItem{
	{Title: "台積電法說會", SourceCategory: "finance"},
	{Title: "颱風假", TrafficHint: "20萬+", SourceCategory: "home"},
}

func TestAnalyzeEmptyItems(t *testing.T) {
	sc := &stubClient{}
	a := New(sc, Config{ModelIDs: []string{"m1"}})

	records, log := a.Analyze(context.Background(), source.Finance, nil)

	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Empty(t, sc.calls)
	require.Len(t, log, 1)
	assert.Contains(t, log[0], "no candidate items")
}

func TestAnalyzeFallsBackToThirdModel(t *testing.T) {
	sc := &stubClient{replies: map[string]reply{
		"m1": {err: errors.New("model not found")},
		"m2": {err: errors.New("quota exceeded")},
		"m3": {text: "```json\n[{\"id\":1,\"keyword\":\"X\",\"category\":\"c\",\"score\":50,\"summary\":\"s\",\"hashtags\":[\"#x\"]}]\n```"},
		"m4": {text: "[]"},
	}}
	a := New(sc, Config{ModelIDs: []string{"m1", "m2", "m3", "m4"}})

	records, log := a.Analyze(context.Background(), source.Finance, testItems)

	assert.Equal(t, []string{"m1", "m2", "m3"}, sc.calls)
	require.Len(t, records, 1)
	assert.Equal(t, model.TrendRecord{ID: 1, Keyword: "X", Category: "c", Score: 50, Summary: "s", Hashtags: []string{"#x"}}, records[0])
	require.Len(t, log, 3)
	assert.Equal(t, "model m1: failure: model not found", log[0])
	assert.Equal(t, "model m3: success", log[2])
}

func TestAnalyzeAllEmpty(t *testing.T) {
	sc := &stubClient{replies: map[string]reply{}}
	models := []string{"m1", "m2", "m3", "m4"}
	a := New(sc, Config{ModelIDs: models})

	records, log := a.Analyze(context.Background(), source.Tech, testItems)

	assert.Empty(t, records)
	assert.Equal(t, models, sc.calls)
	require.Len(t, log, len(models))
	for i, m := range models {
		assert.Equal(t, "model "+m+": empty", log[i])
	}
}

func TestAnalyzeMalformedAndNonArray(t *testing.T) {
	sc := &stubClient{replies: map[string]reply{
		"m1": {text: "[{\"id\":1,"},
		"m2": {text: `{"keyword":"X"}`},
		"m3": {text: `[{"keyword":"  "}]`},
	}}
	a := New(sc, Config{ModelIDs: []string{"m1", "m2", "m3"}})

	records, log := a.Analyze(context.Background(), source.Sports, testItems)

	assert.Empty(t, records)
	require.Len(t, log, 3)
	assert.Contains(t, log[0], "failure")
	assert.Contains(t, log[1], "failure")
	assert.Equal(t, "model m3: success", log[2])
}

func TestAnalyzeEmptyArrayStopsFallback(t *testing.T) {
	sc := &stubClient{replies: map[string]reply{
		"m1": {text: "[]"},
		"m2": {text: `[{"id":1,"keyword":"X","score":50}]`},
	}}
	a := New(sc, Config{ModelIDs: []string{"m1", "m2"}})

	records, log := a.Analyze(context.Background(), source.Tech, testItems)

	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, []string{"m1"}, sc.calls)
	assert.Equal(t, []string{"model m1: success"}, []string(log))
}

func TestAnalyzeFractionalScore(t *testing.T) {
	sc := &stubClient{replies: map[string]reply{
		"m1": {text: `[{"id":1,"keyword":"A","score":85.5,"summary":"s","hashtags":["#a"]},{"id":2,"keyword":"B","score":70,"summary":"s","hashtags":[]},{"id":3,"keyword":"C","summary":"沒有分數"}]`},
		"m2": {text: `[{"id":1,"keyword":"Z","score":10}]`},
	}}
	a := New(sc, Config{ModelIDs: []string{"m1", "m2"}})

	records, log := a.Analyze(context.Background(), source.Finance, testItems)

	assert.Equal(t, []string{"m1"}, sc.calls)
	assert.Equal(t, []string{"model m1: success"}, []string(log))
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Keyword)
	assert.Equal(t, 86, records[0].Score)
	assert.Equal(t, "B", records[1].Keyword)
	assert.Equal(t, 70, records[1].Score)
}

func TestAnalyzeSanitizesRecords(t *testing.T) {
	sc := &stubClient{replies: map[string]reply{
		"m1": {text: `[{"id":1,"keyword":"A","score":150},{"id":2,"keyword":""},{"id":3,"keyword":" B ","score":-5}]`},
	}}
	a := New(sc, Config{ModelIDs: []string{"m1"}})

	records, _ := a.Analyze(context.Background(), source.Home, testItems)

	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Keyword)
	assert.Equal(t, 100, records[0].Score)
	assert.Equal(t, "B", records[1].Keyword)
	assert.Equal(t, 0, records[1].Score)
	assert.NotNil(t, records[1].Hashtags)
}

func TestAnalyzeRoundTrip(t *testing.T) {
	want := []model.TrendRecord{
		{ID: 1, Keyword: "颱風", Category: "社會", Score: 95, VolumeLabel: "20萬+", Summary: "停班停課", Hashtags: []string{"#颱風"}},
		{ID: 2, Keyword: "台積電", Category: "財經", Score: 80, Summary: "法說會", Hashtags: []string{}},
	}
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	sc := &stubClient{replies: map[string]reply{"m1": {text: string(raw)}}}
	records, _ := New(sc, Config{ModelIDs: []string{"m1"}}).Analyze(context.Background(), source.Home, testItems)

	assert.Equal(t, want, records)
}

func TestAnalyzePromptFailure(t *testing.T) {
	sc := &stubClient{}
	a := New(sc, Config{
		ModelIDs: []string{"m1"},
		Prompt: func(source.Category, []model.CandidateItem, string) (string, error) {
			return "", errors.New("boom")
		},
	})

	records, log := a.Analyze(context.Background(), source.Home, testItems)

	assert.Empty(t, records)
	assert.Empty(t, sc.calls)
	require.Len(t, log, 1)
	assert.Contains(t, log[0], "boom")
}

func TestAnalyzeCancelledContext(t *testing.T) {
	sc := &stubClient{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, log := New(sc, Config{ModelIDs: []string{"m1", "m2"}}).Analyze(ctx, source.Home, testItems)

	assert.Empty(t, records)
	assert.Empty(t, sc.calls)
	require.Len(t, log, 2)
	assert.True(t, strings.HasSuffix(log[0], context.Canceled.Error()))
}

func TestDefaultPrompt(t *testing.T) {
	home, err := DefaultPrompt(source.Home, testItems, "繁體中文")
	require.NoError(t, err)
	assert.Contains(t, home, "15-20")
	assert.Contains(t, home, `"title":"颱風假"`)
	assert.Contains(t, home, `"traffic":"20萬+"`)
	assert.NotContains(t, home, `"snippet"`)
	assert.Contains(t, home, `"volume_label"`)
	assert.Contains(t, home, "繁體中文")

	topic, err := DefaultPrompt(source.Finance, testItems, "English")
	require.NoError(t, err)
	assert.Contains(t, topic, "10-15")
	assert.Contains(t, topic, source.Finance.Label())
	assert.Contains(t, topic, "English")
}

func TestAnalyzeUsesConfiguredLanguage(t *testing.T) {
	sc := &stubClient{}
	New(sc, Config{ModelIDs: []string{"m1"}, Language: "日本語"}).Analyze(context.Background(), source.Tech, testItems)

	require.Len(t, sc.prompts, 1)
	assert.Contains(t, sc.prompts[0], "日本語")
}
