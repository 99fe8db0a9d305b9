// ABOUTME: Resolves a dataset source string (local path, HTTP(S) URL, or SQLite file) and loads it.
// ABOUTME: Remote fetches fail fast with no retry; any failure surfaces as a *LoadError.
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFetchTimeout bounds a remote dataset download.
const DefaultFetchTimeout = 30 * time.Second

// maxRemoteBytes caps how much of a remote response is read.
const maxRemoteBytes = 64 << 20

type loadOptions struct {
	client  *http.Client
	timeout time.Duration
}

// Option customizes Load.
type Option func(*loadOptions)

// WithHTTPClient sets the client used for http:// and https:// sources.
func WithHTTPClient(c *http.Client) Option {
	return func(o *loadOptions) {
		if c != nil {
			o.client = c
		}
	}
}

// WithTimeout bounds a remote fetch. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(o *loadOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// SourceKind classifies a dataset source string.
type SourceKind string

const (
	SourceFile   SourceKind = "file"
	SourceRemote SourceKind = "remote"
	SourceSQLite SourceKind = "sqlite"
)

// KindOf reports how Load will treat source.
func KindOf(source string) SourceKind {
	lower := strings.ToLower(strings.TrimSpace(source))
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return SourceRemote
	case strings.HasPrefix(lower, "sqlite://"):
		return SourceSQLite
	}
	switch strings.ToLower(filepath.Ext(lower)) {
	case ".db", ".sqlite", ".sqlite3":
		return SourceSQLite
	}
	return SourceFile
}

// Load reads the dataset at source.
func Load(ctx context.Context, source string, opts ...Option) (*Dataset, error) {
	o := loadOptions{
		client:  http.DefaultClient,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	source = strings.TrimSpace(source)
	if source == "" {
		return nil, loadErr(source, "empty source", nil)
	}

	switch KindOf(source) {
	case SourceRemote:
		return loadRemote(ctx, source, o)
	case SourceSQLite:
		return LoadSQLite(ctx, strings.TrimPrefix(source, "sqlite://"))
	default:
		return loadFile(source)
	}
}

func loadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadErr(path, "open", err)
	}
	defer f.Close()
	return Parse(f, path)
}

func loadRemote(ctx context.Context, url string, o loadOptions) (*Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, loadErr(url, "build request", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, loadErr(url, "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, loadErr(url, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
	return Parse(io.LimitReader(resp.Body, maxRemoteBytes), url)
}
