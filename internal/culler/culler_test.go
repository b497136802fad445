package culler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikbrunner/bmdash/internal/model"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/nohead", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func bookmarksFor(urls ...string) []model.Bookmark {
	bookmarks := make([]model.Bookmark, len(urls))
	for i, u := range urls {
		bookmarks[i] = model.Bookmark{ID: u, Title: u, URL: u, Tags: []string{}}
	}
	return bookmarks
}

func TestCheckURLs_Statuses(t *testing.T) {
	srv := newTestServer(t)

	bookmarks := bookmarksFor(
		srv.URL+"/ok",
		srv.URL+"/missing",
		srv.URL+"/gone",
		srv.URL+"/broken",
		srv.URL+"/nohead",
		srv.URL+"/redirect",
	)

	results := CheckURLs(context.Background(), bookmarks, Options{Concurrency: 3, Timeout: 5 * time.Second})
	assert.Assert(t, is.Len(results, len(bookmarks)))

	expected := []struct {
		status Status
		code   int
	}{
		{Healthy, 200},
		{Dead, 404},
		{Dead, 410},
		{Unreachable, 500},
		{Healthy, 200},
		{Healthy, 200},
	}
	for i, want := range expected {
		got := results[i]
		assert.Equal(t, got.Bookmark.ID, bookmarks[i].ID, "results must keep input order")
		assert.Equal(t, got.Status, want.status, bookmarks[i].URL)
		assert.Equal(t, got.StatusCode, want.code, bookmarks[i].URL)
	}
	assert.Equal(t, results[3].Error, "Internal Server Error")
}

func TestCheckURLs_ExcludedDomain(t *testing.T) {
	srv := newTestServer(t)

	results := CheckURLs(context.Background(), bookmarksFor(srv.URL+"/missing"), Options{
		ExcludeDomains: []string{"127.0.0.1"},
	})

	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Error, "Possibly private (auth required)")
}

func TestCheckURLs_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	results := CheckURLs(context.Background(), bookmarksFor(addr), Options{Timeout: time.Second})

	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].StatusCode, 0)
	assert.Equal(t, results[0].Error, "Connection refused")
}

func TestCheckURLs_Progress(t *testing.T) {
	srv := newTestServer(t)
	bookmarks := bookmarksFor(srv.URL+"/ok", srv.URL+"/ok", srv.URL+"/ok", srv.URL+"/ok")

	var calls, last atomic.Int32
	CheckURLs(context.Background(), bookmarks, Options{
		Concurrency: 2,
		OnProgress: func(completed, total int) {
			calls.Add(1)
			last.Store(int32(completed))
			assert.Check(t, is.Equal(total, 4))
		},
	})

	assert.Equal(t, calls.Load(), int32(4))
	assert.Equal(t, last.Load(), int32(4))
}

func TestCheckURLs_Cancelled(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := CheckURLs(ctx, bookmarksFor(srv.URL+"/ok"), Options{})

	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Error, "Cancelled")
}

func TestCheckURLs_Empty(t *testing.T) {
	assert.Assert(t, is.Nil(CheckURLs(context.Background(), nil, Options{})))
}

func TestDeadIDs(t *testing.T) {
	a, b, c := model.Bookmark{ID: "a"}, model.Bookmark{ID: "b"}, model.Bookmark{ID: "c"}
	results := []Result{
		{Bookmark: &a, Status: Dead},
		{Bookmark: &b, Status: Healthy},
		{Bookmark: &c, Status: Dead},
	}

	assert.DeepEqual(t, DeadIDs(results), []string{"a", "c"})
}

func TestIsExcludedDomain(t *testing.T) {
	excludes := map[string]bool{"github.com": true}

	tests := []struct {
		url      string
		expected bool
	}{
		{"https://github.com/private/repo", true},
		{"https://api.github.com/repos", true},
		{"https://GitHub.com/x", true},
		{"https://github.com:443/x", true},
		{"https://notgithub.com", false},
		{"https://example.com", false},
		{"://bad", false},
	}

	for _, tt := range tests {
		assert.Check(t, is.Equal(isExcludedDomain(tt.url, excludes), tt.expected), tt.url)
	}
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"dial tcp: lookup nope.invalid: no such host", "DNS failure"},
		{"Get \"x\": context deadline exceeded (Client.Timeout exceeded while awaiting headers)", "Timeout"},
		{"dial tcp 127.0.0.1:1: connect: connection refused", "Connection refused"},
		{"x509: certificate signed by unknown authority", "TLS/certificate error"},
		{"something odd", "something odd"},
	}

	for _, tt := range tests {
		assert.Check(t, is.Equal(normalizeError(tt.input), tt.expected))
	}
}
