package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	in := []TrendRecord{
		{ID: 1, Keyword: " 台積電 ", Score: 120},
		{ID: 2, Keyword: "", Score: 50},
		{ID: 3, Keyword: "颱風", Score: -5, Hashtags: []string{"#颱風"}},
	}

	out := Sanitize(in)

	assert.Len(t, out, 2)
	assert.Equal(t, "台積電", out[0].Keyword)
	assert.Equal(t, MaxScore, out[0].Score)
	assert.NotNil(t, out[0].Hashtags)
	assert.Equal(t, 3, out[1].ID)
	assert.Equal(t, MinScore, out[1].Score)
	assert.Equal(t, []string{"#颱風"}, out[1].Hashtags)
}

func TestResultEmpty(t *testing.T) {
	assert.True(t, Result{}.Empty())
	assert.False(t, Result{Records: []TrendRecord{{Keyword: "x"}}}.Empty())
}

func TestTrendRecordLenientScore(t *testing.T) {
	raw := `[
		{"id":1,"keyword":"台積電","score":85.5,"hashtags":["#台積電"]},
		{"id":2,"keyword":"颱風","score":"70"},
		{"id":3,"keyword":"油價","score":" 42.4 "},
		{"id":4,"keyword":"選舉","score":1e9}
	]`

	var records []TrendRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	out := Sanitize(records)

	require.Len(t, out, 4)
	assert.Equal(t, 86, out[0].Score)
	assert.Equal(t, 70, out[1].Score)
	assert.Equal(t, 42, out[2].Score)
	assert.Equal(t, MaxScore, out[3].Score)
	assert.Equal(t, []string{"#台積電"}, out[0].Hashtags)
}

func TestTrendRecordMissingScoreDropped(t *testing.T) {
	raw := `[
		{"id":1,"keyword":"沒有分數"},
		{"id":2,"keyword":"空分數","score":null},
		{"id":3,"keyword":"零分","score":0}
	]`

	var records []TrendRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	out := Sanitize(records)

	require.Len(t, out, 1)
	assert.Equal(t, "零分", out[0].Keyword)
	assert.Equal(t, 0, out[0].Score)
}

func TestTrendRecordBadScore(t *testing.T) {
	for _, raw := range []string{
		`{"keyword":"x","score":"高"}`,
		`{"keyword":"x","score":true}`,
		`{"keyword":"x","score":[1]}`,
	} {
		var r TrendRecord
		assert.Error(t, json.Unmarshal([]byte(raw), &r), raw)
	}
}

func TestTrendRecordMarshalKeepsScore(t *testing.T) {
	b, err := json.Marshal(TrendRecord{ID: 1, Keyword: "x", Score: 0, Hashtags: []string{}})
	require.NoError(t, err)

	var back TrendRecord
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Len(t, Sanitize([]TrendRecord{back}), 1)
}
