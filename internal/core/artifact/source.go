package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"

	perr "fakenews/internal/platform/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source fetches the stored bytes behind a ref
type Source interface {
	Fetch(ctx context.Context, ref Ref, limit int64) ([]byte, error)
}

// FileSource reads from the local filesystem. Relative paths resolve against Root when set
type FileSource struct {
	Root string
}

// Fetch reads at most limit bytes
func (f FileSource) Fetch(_ context.Context, ref Ref, limit int64) ([]byte, error) {
	p := ref.Path
	if f.Root != "" && !filepath.IsAbs(p) {
		p = filepath.Join(f.Root, p)
	}
	fh, err := os.Open(p)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeArtifact, "open %s", p)
	}
	defer func() { _ = fh.Close() }()
	return readLimited(fh, limit, p)
}

func readLimited(r io.Reader, limit int64, what string) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeArtifact, "read %s", what)
	}
	if int64(len(b)) > limit {
		return nil, perr.Artifactf("%s is larger than %d bytes", what, limit)
	}
	return b, nil
}

// S3Config addresses an S3 compatible store. An endpoint switches to path style for MinIO
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Client builds a client from static settings without touching shared AWS config files
func NewS3Client(cfg S3Config) *s3.Client {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	return s3.NewFromConfig(aws.Config{Region: region}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		if cfg.AccessKey != "" {
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		}
	})
}

// partSize is the ranged GET size used by the downloader
const partSize = 8 * 1024 * 1024

// S3API is the slice of the S3 client the source uses, *s3.Client included
type S3API interface {
	manager.DownloadAPIClient
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Source downloads objects with the transfer manager
type S3Source struct {
	client S3API
}

// NewS3Source wraps client
func NewS3Source(client S3API) *S3Source {
	return &S3Source{client: client}
}

// Fetch downloads the object into memory, refusing objects above limit before the download starts
func (s *S3Source) Fetch(ctx context.Context, ref Ref, limit int64) ([]byte, error) {
	if ref.Scheme != SchemeS3 {
		return nil, perr.Artifactf("%s is not an s3 reference", ref)
	}
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Path),
	})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeArtifact, "stat %s", ref)
	}
	if size := aws.ToInt64(head.ContentLength); size > limit {
		return nil, perr.Artifactf("%s is larger than %d bytes", ref, limit)
	}

	dl := manager.NewDownloader(s.client, func(d *manager.Downloader) {
		d.PartSize = partSize
		d.Concurrency = 1
	})
	buf := manager.NewWriteAtBuffer([]byte{})
	n, err := dl.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Path),
	})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeArtifact, "download %s", ref)
	}
	// the object can grow between the stat and the download
	if n > limit {
		return nil, perr.Artifactf("%s is larger than %d bytes", ref, limit)
	}
	return buf.Bytes(), nil
}
