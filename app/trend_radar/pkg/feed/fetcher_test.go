package feed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/source"
)

func rssWithTitles(titles ...string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Test</title>`)
	for _, t := range titles {
		fmt.Fprintf(&sb, "<item><title>%s</title><link>https://example.com/%s</link></item>", t, t)
	}
	sb.WriteString(`</channel></rss>`)
	return sb.String()
}

type feedServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newFeedServer(t *testing.T, status int, body string) *feedServer {
	t.Helper()
	fs := &feedServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(fs.Close)
	return fs
}

func newTestFetcher(opts ...Option) *Fetcher {
	base := []Option{WithJitter(0), WithRand(rand.New(rand.NewPCG(1, 2)))}
	return NewFetcher(append(base, opts...)...)
}

func TestFetchStopsAfterFirstSuccess(t *testing.T) {
	bad := newFeedServer(t, http.StatusServiceUnavailable, "")
	good := newFeedServer(t, http.StatusOK, rssWithTitles("A", "B", "C"))
	spare := newFeedServer(t, http.StatusOK, rssWithTitles("Z"))

	res := newTestFetcher().Fetch(context.Background(), source.Finance, []string{bad.URL, good.URL, spare.URL})

	require.Len(t, res.Items, 3)
	assert.Equal(t, "A", res.Items[0].Title)
	assert.Equal(t, "finance", res.Items[0].SourceCategory)
	assert.Len(t, res.Log, 2)
	assert.Contains(t, res.Log[0], "HTTP 503")
	assert.Contains(t, res.Log[1], "success")
	assert.EqualValues(t, 0, spare.hits.Load())
}

func TestFetchAllFailed(t *testing.T) {
	s1 := newFeedServer(t, http.StatusNotFound, "")
	s2 := newFeedServer(t, http.StatusForbidden, "")
	s3 := newFeedServer(t, http.StatusInternalServerError, "")

	res := newTestFetcher().Fetch(context.Background(), source.Tech, []string{s1.URL, s2.URL, s3.URL})

	assert.Empty(t, res.Items)
	require.Len(t, res.Log, 3)
	assert.Contains(t, res.Log[0], "HTTP 404")
	assert.Contains(t, res.Log[1], "HTTP 403")
	assert.Contains(t, res.Log[2], "HTTP 500")
}

func TestFetchTransportErrorAndInvalidXML(t *testing.T) {
	broken := newFeedServer(t, http.StatusOK, "not valid xml")
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	res := newTestFetcher().Fetch(context.Background(), source.Sports, []string{deadURL, broken.URL})

	assert.Empty(t, res.Items)
	require.Len(t, res.Log, 2)
	assert.Contains(t, res.Log[0], "failure")
	assert.Contains(t, res.Log[1], "parse feed")
}

func TestFetchEmptyFeedMovesOn(t *testing.T) {
	empty := newFeedServer(t, http.StatusOK, rssWithTitles())
	good := newFeedServer(t, http.StatusOK, rssWithTitles("X"))

	res := newTestFetcher().Fetch(context.Background(), source.Health, []string{empty.URL, good.URL})

	require.Len(t, res.Items, 1)
	assert.Contains(t, res.Log[0], "empty")
}

func TestFetchAggregateCombinesAll(t *testing.T) {
	s1 := newFeedServer(t, http.StatusOK, rssWithTitles("A", "B"))
	s2 := newFeedServer(t, http.StatusBadGateway, "")
	s3 := newFeedServer(t, http.StatusOK, rssWithTitles("C"))

	res := newTestFetcher().Fetch(context.Background(), source.Home, []string{s1.URL, s2.URL, s3.URL})

	titles := make([]string, 0, len(res.Items))
	for _, it := range res.Items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"A", "B", "C"}, titles)
	assert.Len(t, res.Log, 3)
	assert.EqualValues(t, 1, s3.hits.Load())
}

func TestFetchCapPerSource(t *testing.T) {
	var many []string
	for i := 0; i < 40; i++ {
		many = append(many, fmt.Sprintf("T%d", i))
	}
	s1 := newFeedServer(t, http.StatusOK, rssWithTitles(many...))
	s2 := newFeedServer(t, http.StatusOK, rssWithTitles(many...))

	f := newTestFetcher(WithCaps(25, 15))
	topic := f.Fetch(context.Background(), source.Politics, []string{s1.URL})
	home := f.Fetch(context.Background(), source.Home, []string{s1.URL, s2.URL})

	assert.Len(t, topic.Items, 15)
	assert.Len(t, home.Items, 50)
}

func TestFetchRequestShaping(t *testing.T) {
	uas := []string{"ua-one", "ua-two"}
	var gotUA, gotCookie, gotLang atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		gotCookie.Store(r.Header.Get("Cookie"))
		gotLang.Store(r.Header.Get("Accept-Language"))
		w.Write([]byte(rssWithTitles("A")))
	}))
	defer srv.Close()

	f := newTestFetcher(WithUserAgents(uas), WithCookie("CONSENT=YES+test"))
	res := f.Fetch(context.Background(), source.Tech, []string{srv.URL})

	require.Len(t, res.Items, 1)
	assert.True(t, slices.Contains(uas, gotUA.Load().(string)))
	assert.Equal(t, "CONSENT=YES+test", gotCookie.Load())
	assert.Equal(t, DefaultAcceptLanguage, gotLang.Load())
}

func TestFetchCancelledContext(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, rssWithTitles("A"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newTestFetcher().Fetch(ctx, source.Tech, []string{srv.URL})

	assert.Empty(t, res.Items)
	require.Len(t, res.Log, 1)
	assert.Contains(t, res.Log[0], "skipped")
	assert.EqualValues(t, 0, srv.hits.Load())
}
