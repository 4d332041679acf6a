package content

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Source is where the content document lives.
type Source interface {
	// Open returns the raw document. Callers close it.
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name is the path or URL, used for logging and format detection.
	Name() string
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// NewSource returns an HTTPSource for http(s) locations and a FileSource otherwise.
func NewSource(location string, timeout time.Duration) Source {
	if IsRemote(location) {
		return &HTTPSource{URL: location, Client: &http.Client{Timeout: timeout}}
	}
	return FileSource{Path: location}
}

// FileSource reads the document from local disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open content file: %s", s.Path)
	}
	return f, nil
}

// HTTPSource fetches the document from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", s.URL)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch content from %s", s.URL)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("fetch content from %s: unexpected status %d", s.URL, resp.StatusCode)
	}
	return resp.Body, nil
}

// Fetch opens and decodes the document from src.
func Fetch(ctx context.Context, src Source) (Document, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Decode(rc, FormatFor(src.Name()))
}
