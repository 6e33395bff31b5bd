package imaging

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxFetchBytes = 64 << 20 // refuse pathological payloads

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Fetch resolves an image source reference to its raw bytes. It accepts
// data: URIs, http(s) URLs, file: URLs and plain paths; relative paths
// are resolved against baseDir.
func Fetch(ctx context.Context, src, baseDir string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("empty image source")
	}

	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURI(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return fetchHTTP(ctx, src)
	case strings.HasPrefix(src, "file://"):
		u, err := url.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing file url %q: %w", src, err)
		}
		return readFile(u.Path)
	}

	path := src
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	return readFile(path)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image file: %w", err)
	}
	return data, nil
}

func fetchHTTP(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("building image request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", src, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	return data, nil
}

// decodeDataURI handles data:[<mediatype>][;base64],<data>.
func decodeDataURI(src string) ([]byte, error) {
	comma := strings.IndexByte(src, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data uri")
	}
	meta, payload := src[5:comma], src[comma+1:]
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 data uri: %w", err)
		}
		return data, nil
	}
	unescaped, err := url.QueryUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding data uri: %w", err)
	}
	return []byte(unescaped), nil
}
