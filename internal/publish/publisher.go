package publish

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"

	"github.com/vango-dev/hyperdom/internal/config"
	"github.com/vango-dev/hyperdom/internal/errors"
)

// ContentType is the content type of every published snapshot.
const ContentType = "text/html; charset=utf-8"

// PutObjectAPI is the subset of *s3.Client used by Publisher.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ PutObjectAPI = (*s3.Client)(nil)

// Publisher uploads snapshots to a bucket.
type Publisher struct {
	client PutObjectAPI
	bucket string
	prefix string
	gzip   bool
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithPrefix prepends prefix to every object key.
func WithPrefix(prefix string) Option {
	return func(p *Publisher) { p.prefix = prefix }
}

// WithGzip enables gzip content encoding.
func WithGzip(enabled bool) Option {
	return func(p *Publisher) { p.gzip = enabled }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Publisher for bucket.
func New(client PutObjectAPI, bucket string, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		bucket: bucket,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the object key name is stored under.
func (p *Publisher) Key(name string) string {
	return p.prefix + strings.TrimPrefix(name, "/")
}

// Publish uploads html under the key for name and returns that key.
func (p *Publisher) Publish(ctx context.Context, name, html string) (string, error) {
	if p.bucket == "" {
		return "", errors.New("E030")
	}
	if name == "" {
		return "", errors.New("E050").WithDetail("empty object key")
	}

	key := p.Key(name)
	body := []byte(html)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(ContentType),
		Metadata: map[string]string{
			"rendered-at": p.now().UTC().Format(time.RFC3339),
		},
	}

	if p.gzip {
		compressed, err := compress(body)
		if err != nil {
			return "", errors.New("E032").Wrap(err)
		}
		body = compressed
		input.ContentEncoding = aws.String("gzip")
	}
	input.Body = bytes.NewReader(body)
	input.ContentLength = aws.Int64(int64(len(body)))

	if _, err := p.client.PutObject(ctx, input); err != nil {
		return "", errors.New("E031").
			WithDetailf("s3://%s/%s", p.bucket, key).
			Wrap(err)
	}

	p.logger.Info("snapshot published",
		"bucket", p.bucket,
		"key", key,
		"bytes", len(body),
		"gzip", p.gzip,
	)
	return key, nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewClient builds an S3 client from publish settings. Static credentials
// are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// AWS_SESSION_TOKEN; without them requests are sent unsigned. optFns are
// applied after the settings, as with s3.New.
func NewClient(cfg config.PublishConfig, optFns ...func(*s3.Options)) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.PathStyle,
	}
	if opts.Region == "" {
		opts.Region = config.DefaultRegion
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	if creds, ok := envCredentials(); ok {
		opts.Credentials = aws.NewCredentialsCache(creds)
	}
	return s3.New(opts, optFns...)
}

func envCredentials() (aws.CredentialsProvider, bool) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return nil, false
	}
	token := os.Getenv("AWS_SESSION_TOKEN")
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    token,
			Source:          "Environment",
		}, nil
	}), true
}
