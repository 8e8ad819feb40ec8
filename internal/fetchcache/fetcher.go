// Package fetchcache implements conditional HTTP retrieval with local
// ETag-based freshness tracking. Every remote resource the extractor touches
// (Showdown reference data, Pokedata listings and rosters) goes through a
// Fetcher so repeated runs transfer nothing that has not changed.
package fetchcache

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds every request issued by the fetcher.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the extractor to the upstream hosts.
	DefaultUserAgent = "team-extractor/1.0"
)

// Conservative rate limit: 4 requests per second across all hosts.
var DefaultRateLimit = rate.Every(250 * time.Millisecond)

// StatusError reports a non-2xx (and non-304) response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.StatusCode, e.URL)
}

// Fetcher downloads remote resources into a local cache directory,
// revalidating with ETags so unchanged content is never re-transferred.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	debug      bool
}

// Options configures a Fetcher.
type Options struct {
	// RateLimit controls request frequency (default: 4 req/second).
	RateLimit rate.Limit

	// Timeout for HTTP requests (default: 30 seconds).
	Timeout time.Duration

	// HTTPClient allows a custom HTTP client (tests inject one).
	HTTPClient *http.Client

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables cache hit/miss logging.
	Debug bool
}

// DefaultOptions returns conservative default options.
func DefaultOptions() Options {
	return Options{
		RateLimit: DefaultRateLimit,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// New creates a Fetcher.
func New(options Options) *Fetcher {
	if options.RateLimit == 0 {
		options.RateLimit = DefaultRateLimit
	}
	if options.Timeout == 0 {
		options.Timeout = DefaultTimeout
	}
	if options.UserAgent == "" {
		options.UserAgent = DefaultUserAgent
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: options.Timeout,
		}
	}

	return &Fetcher{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(options.RateLimit, 1),
		userAgent:  options.UserAgent,
		debug:      options.Debug,
	}
}

// Fetch returns the bytes of url, using the copy at localPath when the remote
// content has not changed. The freshness policy:
//
//  1. Unless force is set, an existing local copy with a stored ETag is
//     revalidated with a HEAD probe; a matching remote ETag returns the local
//     copy without transferring the body.
//  2. Otherwise a GET carrying If-None-Match is issued; 304 keeps the local
//     copy.
//  3. Any other 2xx response replaces localPath atomically and persists the
//     new ETag to a sidecar file.
//
// A failed HEAD probe is non-fatal: the fetcher falls back to the GET. There
// is no automatic retry of the GET itself.
func (f *Fetcher) Fetch(ctx context.Context, url, localPath string, force bool) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	localETag := readETag(localPath)
	remoteETag := ""

	if !force && fileExists(localPath) {
		etag, err := f.head(ctx, url)
		if err != nil {
			log.Printf("[Fetcher] HEAD failed for %s (%v); falling back to GET", url, err)
		} else {
			remoteETag = etag
			if remoteETag != "" && localETag != "" && remoteETag == localETag {
				if f.debug {
					log.Printf("[Fetcher] Cache hit for %s (ETag %s)", url, remoteETag)
				}
				return os.ReadFile(localPath)
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	if !force && localETag != "" {
		req.Header.Set("If-None-Match", localETag)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified && fileExists(localPath) {
		if f.debug {
			log.Printf("[Fetcher] Server returned 304 for %s; keeping local copy", url)
		}
		return os.ReadFile(localPath)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body for %s: %w", url, err)
	}

	// The local file is replaced only after the full body is in hand, so a
	// truncated transfer never clobbers a good cached copy.
	if err := writeFileAtomic(localPath, body); err != nil {
		return nil, err
	}

	newETag := resp.Header.Get("ETag")
	if newETag == "" {
		newETag = remoteETag
	}
	if newETag != "" {
		if err := writeETag(localPath, newETag); err != nil {
			return nil, err
		}
	}
	if f.debug {
		log.Printf("[Fetcher] Downloaded %s (%d bytes)", url, len(body))
	}
	return body, nil
}

// head issues the freshness probe and returns the remote ETag.
func (f *Fetcher) head(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp.Header.Get("ETag"), nil
}

// ETagPath returns the sidecar file that stores the ETag for localPath.
func ETagPath(localPath string) string {
	return localPath + ".etag"
}

func readETag(localPath string) string {
	data, err := os.ReadFile(ETagPath(localPath))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func writeETag(localPath, etag string) error {
	if err := os.WriteFile(ETagPath(localPath), []byte(strings.TrimSpace(etag)), 0o644); err != nil {
		return fmt.Errorf("write etag sidecar: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
