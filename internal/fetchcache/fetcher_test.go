package fetchcache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/time/rate"
)

// countingServer tracks how many HEAD and GET requests arrive and serves a
// fixed body with a fixed ETag, honoring If-None-Match.
type countingServer struct {
	mu    sync.Mutex
	heads int
	gets  int

	etag string
	body []byte

	headFails bool
}

func (s *countingServer) handler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.Method {
	case http.MethodHead:
		s.heads++
		if s.headFails {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("ETag", s.etag)
	case http.MethodGet:
		s.gets++
		if r.Header.Get("If-None-Match") == s.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", s.etag)
		_, _ = w.Write(s.body)
	}
}

func (s *countingServer) counts() (heads, gets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heads, s.gets
}

func newTestFetcher() *Fetcher {
	return New(Options{RateLimit: rate.Inf})
}

func TestFetchDownloadsAndCaches(t *testing.T) {
	srv := &countingServer{etag: `"v1"`, body: []byte(`{"ok":true}`)}
	server := httptest.NewServer(http.HandlerFunc(srv.handler))
	defer server.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "payload.json")
	f := newTestFetcher()

	got, err := f.Fetch(context.Background(), server.URL, local, false)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(got) != `{"ok":true}` {
		t.Errorf("Fetch() body = %q", got)
	}

	data, err := os.ReadFile(local)
	if err != nil {
		t.Fatalf("local copy not written: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("local copy = %q", data)
	}
	etag, err := os.ReadFile(ETagPath(local))
	if err != nil {
		t.Fatalf("etag sidecar not written: %v", err)
	}
	if string(etag) != `"v1"` {
		t.Errorf("etag sidecar = %q", etag)
	}
}

func TestFetchHEADMatchSkipsTransfer(t *testing.T) {
	srv := &countingServer{etag: `"v1"`, body: []byte("payload")}
	server := httptest.NewServer(http.HandlerFunc(srv.handler))
	defer server.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "payload.json")
	f := newTestFetcher()

	if _, err := f.Fetch(context.Background(), server.URL, local, false); err != nil {
		t.Fatalf("initial Fetch() error = %v", err)
	}
	_, getsBefore := srv.counts()

	got, err := f.Fetch(context.Background(), server.URL, local, false)
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("second Fetch() body = %q", got)
	}

	heads, gets := srv.counts()
	if heads != 1 {
		t.Errorf("HEAD count = %d, want 1", heads)
	}
	if gets != getsBefore {
		t.Errorf("GET count = %d, want %d (zero bytes re-transferred)", gets, getsBefore)
	}
}

func TestFetchHEADFailureFallsBackToGET(t *testing.T) {
	srv := &countingServer{etag: `"v1"`, body: []byte("payload"), headFails: true}
	server := httptest.NewServer(http.HandlerFunc(srv.handler))
	defer server.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "payload.json")
	f := newTestFetcher()

	if _, err := f.Fetch(context.Background(), server.URL, local, false); err != nil {
		t.Fatalf("initial Fetch() error = %v", err)
	}

	// The broken HEAD must not fail the fetch; the conditional GET answers
	// 304 and the local copy survives.
	got, err := f.Fetch(context.Background(), server.URL, local, false)
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("second Fetch() body = %q", got)
	}
	_, gets := srv.counts()
	if gets != 2 {
		t.Errorf("GET count = %d, want 2", gets)
	}
}

func TestFetchForceSkipsProbe(t *testing.T) {
	srv := &countingServer{etag: `"v1"`, body: []byte("payload")}
	server := httptest.NewServer(http.HandlerFunc(srv.handler))
	defer server.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "payload.json")
	f := newTestFetcher()

	if _, err := f.Fetch(context.Background(), server.URL, local, false); err != nil {
		t.Fatalf("initial Fetch() error = %v", err)
	}
	if _, err := f.Fetch(context.Background(), server.URL, local, true); err != nil {
		t.Fatalf("forced Fetch() error = %v", err)
	}

	heads, gets := srv.counts()
	if heads != 0 {
		t.Errorf("HEAD count = %d, want 0 (force skips probe)", heads)
	}
	if gets != 2 {
		t.Errorf("GET count = %d, want 2 (force is unconditional)", gets)
	}
}

func TestFetchPropagatesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "payload.json")
	f := newTestFetcher()

	_, err := f.Fetch(context.Background(), server.URL, local, false)
	statusErr, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("Fetch() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
	if fileExists(local) {
		t.Error("local file written despite fetch failure")
	}
}

func TestFetchUpdatedContentReplacesLocalCopy(t *testing.T) {
	srv := &countingServer{etag: `"v1"`, body: []byte("old")}
	server := httptest.NewServer(http.HandlerFunc(srv.handler))
	defer server.Close()

	dir := t.TempDir()
	local := filepath.Join(dir, "payload.json")
	f := newTestFetcher()

	if _, err := f.Fetch(context.Background(), server.URL, local, false); err != nil {
		t.Fatalf("initial Fetch() error = %v", err)
	}

	srv.mu.Lock()
	srv.etag = `"v2"`
	srv.body = []byte("new")
	srv.mu.Unlock()

	got, err := f.Fetch(context.Background(), server.URL, local, false)
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Fetch() body = %q, want %q", got, "new")
	}
	data, _ := os.ReadFile(local)
	if string(data) != "new" {
		t.Errorf("local copy = %q, want %q", data, "new")
	}
	etag, _ := os.ReadFile(ETagPath(local))
	if string(etag) != `"v2"` {
		t.Errorf("etag sidecar = %q, want %q", etag, `"v2"`)
	}
}
