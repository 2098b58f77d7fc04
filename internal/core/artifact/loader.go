package artifact

import (
	"bytes"
	"context"
	"time"

	perr "fakenews/internal/platform/errors"
	"fakenews/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// DefaultMaxBytes caps a single artifact, compressed or not
const DefaultMaxBytes int64 = 512 << 20

// namespace seeds content ids so the same bytes always get the same id
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://fakenews/artifact"))

// Artifact is a loaded, decompressed blob
type Artifact struct {
	Ref    Ref
	ID     uuid.UUID // SHA-1 name based over the decompressed bytes
	Stored int       // size as fetched
	Bytes  []byte
}

// ContentID derives the artifact id for b
func ContentID(b []byte) uuid.UUID { return uuid.NewSHA1(namespace, b) }

// Loader resolves refs against the configured sources
type Loader struct {
	File     Source
	S3       Source // nil disables s3 refs
	HTTP     Source // nil disables http(s) refs
	MaxBytes int64
}

// DefaultHTTPTimeout bounds a single artifact download
const DefaultHTTPTimeout = 2 * time.Minute

// NewLoader returns a loader reading files under root plus uncached http(s). s3 may be nil
func NewLoader(root string, s3 Source) *Loader {
	return &Loader{
		File:     FileSource{Root: root},
		S3:       s3,
		HTTP:     NewHTTPSource("", DefaultHTTPTimeout),
		MaxBytes: DefaultMaxBytes,
	}
}

// Load fetches, decompresses and ids the artifact behind raw
func (l *Loader) Load(ctx context.Context, raw string) (*Artifact, error) {
	ref, err := ParseRef(raw)
	if err != nil {
		return nil, err
	}
	limit := l.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	var src Source
	switch ref.Scheme {
	case SchemeS3:
		src = l.S3
	case SchemeHTTP:
		src = l.HTTP
	default:
		src = l.File
	}
	if src == nil {
		return nil, perr.Artifactf("no source configured for %s", ref)
	}

	start := time.Now()
	stored, err := src.Fetch(ctx, ref, limit)
	if err != nil {
		return nil, perr.WithOp(err, "artifact.Load")
	}
	b := stored
	if ref.Gzip || isGzip(stored) {
		if b, err = gunzip(stored, limit); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeArtifact, "decompress %s", ref)
		}
	}

	a := &Artifact{Ref: ref, ID: ContentID(b), Stored: len(stored), Bytes: b}
	logger.Named("artifact").Debug().
		Str("ref", ref.Raw).
		Str("id", a.ID.String()).
		Int("stored", a.Stored).
		Int("size", len(b)).
		Dur("elapsed", time.Since(start)).
		Msg("artifact loaded")
	return a, nil
}

func isGzip(b []byte) bool { return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b }

func gunzip(b []byte, limit int64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()
	return readLimited(zr, limit, "decompressed artifact")
}
