// Package artifact loads the read only model files a detector needs.
// References are filesystem paths, s3://bucket/key or http(s) URLs; a .gz suffix or gzip magic means compressed
package artifact

import (
	"net/url"
	"path/filepath"
	"strings"

	perr "fakenews/internal/platform/errors"
)

// Schemes
const (
	SchemeFile = "file"
	SchemeS3   = "s3"
	SchemeHTTP = "http" // http and https
)

// Ref is a parsed artifact reference
type Ref struct {
	Raw    string
	Scheme string
	Bucket string // s3 only
	Path   string // file path, object key or full URL
	Gzip   bool
}

// ParseRef splits s into a Ref
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, perr.Artifactf("empty artifact reference")
	}
	ref := Ref{Raw: s, Scheme: SchemeFile, Path: s, Gzip: strings.HasSuffix(strings.ToLower(s), ".gz")}

	switch {
	case strings.HasPrefix(s, "s3://"):
		rest := strings.TrimPrefix(s, "s3://")
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || key == "" {
			return Ref{}, perr.Artifactf("s3 reference %q needs a bucket and a key", s)
		}
		ref.Scheme, ref.Bucket, ref.Path = SchemeS3, bucket, key
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			return Ref{}, perr.Artifactf("bad artifact url %q", s)
		}
		ref.Scheme = SchemeHTTP
		ref.Gzip = strings.HasSuffix(strings.ToLower(u.Path), ".gz")
	case strings.HasPrefix(s, "file://"):
		ref.Path = strings.TrimPrefix(s, "file://")
	case strings.Contains(s, "://"):
		return Ref{}, perr.Artifactf("unsupported artifact scheme in %q", s)
	}
	if ref.Scheme == SchemeFile {
		ref.Path = filepath.Clean(ref.Path)
	}
	return ref, nil
}

// Name is the last path element, used in logs
func (r Ref) Name() string {
	if r.Scheme != SchemeFile {
		p := r.Path
		if r.Scheme == SchemeHTTP {
			if u, err := url.Parse(r.Path); err == nil {
				p = u.Path
			}
		}
		if i := strings.LastIndex(p, "/"); i >= 0 {
			return p[i+1:]
		}
		return p
	}
	return filepath.Base(r.Path)
}

func (r Ref) String() string { return r.Raw }
