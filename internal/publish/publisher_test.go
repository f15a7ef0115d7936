package publish

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"

	"github.com/vango-dev/hyperdom/internal/config"
	"github.com/vango-dev/hyperdom/internal/errors"
)

type fakeClient struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeClient) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = data
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
}

func TestPublish(t *testing.T) {
	client := &fakeClient{}
	p := New(client, "site", WithPrefix("snapshots/"))
	p.now = fixedNow

	key, err := p.Publish(context.Background(), "/index.html", "<p>hi</p>")
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if key != "snapshots/index.html" {
		t.Fatalf("key = %q", key)
	}

	in := client.input
	if aws.ToString(in.Bucket) != "site" {
		t.Fatalf("Bucket = %q", aws.ToString(in.Bucket))
	}
	if aws.ToString(in.Key) != key {
		t.Fatalf("Key = %q, want %q", aws.ToString(in.Key), key)
	}
	if aws.ToString(in.ContentType) != ContentType {
		t.Fatalf("ContentType = %q", aws.ToString(in.ContentType))
	}
	if in.ContentEncoding != nil {
		t.Fatalf("ContentEncoding = %q, want unset", aws.ToString(in.ContentEncoding))
	}
	if got := aws.ToInt64(in.ContentLength); got != int64(len("<p>hi</p>")) {
		t.Fatalf("ContentLength = %d", got)
	}
	if in.Metadata["rendered-at"] != "2024-03-05T14:07:09Z" {
		t.Fatalf("rendered-at = %q", in.Metadata["rendered-at"])
	}
	if string(client.body) != "<p>hi</p>" {
		t.Fatalf("body = %q", client.body)
	}
}

func TestPublishGzip(t *testing.T) {
	client := &fakeClient{}
	p := New(client, "site", WithGzip(true))

	html := "<ul>" + string(bytes.Repeat([]byte("<li>item</li>"), 50)) + "</ul>"
	if _, err := p.Publish(context.Background(), "list.html", html); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if aws.ToString(client.input.ContentEncoding) != "gzip" {
		t.Fatalf("ContentEncoding = %q, want gzip", aws.ToString(client.input.ContentEncoding))
	}
	if len(client.body) >= len(html) {
		t.Fatalf("compressed body has %d bytes, html has %d", len(client.body), len(html))
	}

	zr, err := gzip.NewReader(bytes.NewReader(client.body))
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	plain, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(plain) != html {
		t.Fatalf("decompressed body does not match")
	}
}

func TestPublishErrors(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		key    string
		err    error
		code   string
	}{
		{"no bucket", "", "index.html", nil, "E030"},
		{"empty key", "site", "", nil, "E050"},
		{"upload fails", "site", "index.html", stderrors.New("access denied"), "E031"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(&fakeClient{err: tt.err}, tt.bucket)
			_, err := p.Publish(context.Background(), tt.key, "<p></p>")
			if !errors.HasCode(err, tt.code) {
				t.Fatalf("Publish() error = %v, want %s", err, tt.code)
			}
			if tt.err != nil && !stderrors.Is(err, tt.err) {
				t.Fatalf("Publish() error = %v, want it to wrap %v", err, tt.err)
			}
		})
	}
}

func TestNewClient(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_SESSION_TOKEN", "")

	client := NewClient(config.PublishConfig{
		Endpoint:  "http://localhost:9000",
		PathStyle: true,
	})
	opts := client.Options()

	if opts.Region != config.DefaultRegion {
		t.Fatalf("Region = %q, want %q", opts.Region, config.DefaultRegion)
	}
	if aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Fatalf("BaseEndpoint = %q", aws.ToString(opts.BaseEndpoint))
	}
	if !opts.UsePathStyle {
		t.Fatal("UsePathStyle = false, want true")
	}

	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "secret" {
		t.Fatalf("credentials = %+v", creds)
	}
}

// recordingHTTPClient answers every request with 200 and keeps the last one.
type recordingHTTPClient struct {
	req *http.Request
}

func (c *recordingHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.req = req
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

func TestNewClientUnsigned(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	httpClient := &recordingHTTPClient{}
	client := NewClient(config.PublishConfig{
		Region:    "eu-west-1",
		Endpoint:  "http://localhost:9000",
		PathStyle: true,
	}, func(o *s3.Options) {
		o.HTTPClient = httpClient
	})

	opts := client.Options()
	if opts.Region != "eu-west-1" {
		t.Fatalf("Region = %q", opts.Region)
	}
	if opts.Credentials != nil {
		t.Fatalf("Credentials = %T, want none", opts.Credentials)
	}

	p := New(client, "site")
	if _, err := p.Publish(context.Background(), "index.html", "<p>hi</p>"); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if httpClient.req == nil {
		t.Fatal("no request sent")
	}
	if got := httpClient.req.URL.Path; got != "/site/index.html" {
		t.Fatalf("request path = %q", got)
	}
	if auth := httpClient.req.Header.Get("Authorization"); auth != "" {
		t.Fatalf("Authorization = %q, want unsigned request", auth)
	}
}
