package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	perr "fakenews/internal/platform/errors"
	"fakenews/internal/platform/logger"
)

// HTTPSource downloads http(s) refs. With a CacheDir it keeps one file per URL plus a
// .meta sidecar and revalidates with If-None-Match / If-Modified-Since, serving the
// cached copy on 304 or when the origin cannot be reached
type HTTPSource struct {
	Client   *http.Client
	CacheDir string // empty disables caching
}

// cacheMeta is the sidecar json, only the fields revalidation needs
type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	Size         int64     `json:"size,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
	LastChecked  time.Time `json:"last_checked"`
}

// NewHTTPSource returns a source with a bounded client timeout
func NewHTTPSource(cacheDir string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{Client: &http.Client{Timeout: timeout}, CacheDir: cacheDir}
}

// Fetch returns at most limit bytes of the body behind ref
func (h *HTTPSource) Fetch(ctx context.Context, ref Ref, limit int64) ([]byte, error) {
	if ref.Scheme != SchemeHTTP {
		return nil, perr.Artifactf("http source cannot fetch %s", ref)
	}
	var path, metaPath string
	var meta *cacheMeta
	if h.CacheDir != "" {
		path = h.cachePath(ref.Path)
		metaPath = path + ".meta"
		meta, _ = loadMeta(metaPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.Path, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeArtifact, "request %s", ref)
	}
	if meta != nil && fileExists(path) {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := h.client().Do(req)
	if err != nil {
		if b, ok := h.fromCache(path, limit); ok {
			logger.Named("artifact").Warn().Err(err).Str("ref", ref.Raw).Msg("origin unreachable; serving cached copy")
			return b, nil
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeArtifact, "get %s", ref)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotModified && path != "":
		if b, ok := h.fromCache(path, limit); ok {
			if meta != nil {
				meta.LastChecked = time.Now().UTC()
				_ = saveMeta(metaPath, meta)
			}
			return b, nil
		}
		return nil, perr.Artifactf("%s not modified but cached copy is missing", ref)

	case resp.StatusCode == http.StatusOK:
		b, err := readLimited(resp.Body, limit, ref.Raw)
		if err != nil {
			return nil, err
		}
		if path != "" {
			if err := h.store(path, metaPath, ref.Path, resp.Header, b); err != nil {
				logger.Named("artifact").Warn().Err(err).Str("ref", ref.Raw).Msg("artifact cache write failed")
			}
		}
		return b, nil

	default:
		if resp.StatusCode >= http.StatusInternalServerError {
			if b, ok := h.fromCache(path, limit); ok {
				return b, nil
			}
		}
		return nil, perr.Artifactf("unexpected status %d for %s", resp.StatusCode, ref)
	}
}

func (h *HTTPSource) client() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return http.DefaultClient
}

// cachePath names the cached copy after the URL, keeping its extension for humans
func (h *HTTPSource) cachePath(rawURL string) string {
	ext := filepath.Ext(rawURL)
	if len(ext) > 8 || strings.ContainsAny(ext, "/?#") {
		ext = ""
	}
	return filepath.Join(h.CacheDir, uuid.NewSHA1(namespace, []byte(rawURL)).String()+ext)
}

func (h *HTTPSource) fromCache(path string, limit int64) ([]byte, bool) {
	if path == "" {
		return nil, false
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer func() { _ = f.Close() }()
	b, err := readLimited(f, limit, path)
	return b, err == nil
}

// store writes body atomically then the sidecar
func (h *HTTPSource) store(path, metaPath, rawURL string, hdr http.Header, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".part"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	now := time.Now().UTC()
	return saveMeta(metaPath, &cacheMeta{
		URL:          rawURL,
		ETag:         strings.TrimSpace(hdr.Get("ETag")),
		LastModified: strings.TrimSpace(hdr.Get("Last-Modified")),
		Size:         int64(len(body)),
		FetchedAt:    now,
		LastChecked:  now,
	})
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func loadMeta(path string) (*cacheMeta, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m cacheMeta
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("artifact cache meta %s: %w", path, err)
	}
	return &m, nil
}

// saveMeta writes the sidecar json atomically
func saveMeta(path string, m *cacheMeta) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	tmp := path + ".part"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

var _ Source = (*HTTPSource)(nil)
