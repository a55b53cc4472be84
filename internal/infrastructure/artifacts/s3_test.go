package artifacts

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// putRecorder is a fake S3 transport that accepts PutObject calls.
type putRecorder struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (m *putRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodPut {
		return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(strings.NewReader("")), Header: http.Header{}}, nil
	}
	body, _ := io.ReadAll(req.Body)
	if dec, ok := decodeChunked(body); ok {
		body = dec
	}
	key := strings.TrimPrefix(req.URL.Path, "/")

	m.mu.Lock()
	m.objects[key] = body
	m.types[key] = req.Header.Get("Content-Type")
	m.mu.Unlock()

	h := http.Header{}
	h.Set("ETag", `"etag"`)
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: h}, nil
}

func newMockPublisher(t *testing.T, prefix string) (*S3Publisher, *putRecorder) {
	t.Helper()

	rt := &putRecorder{objects: map[string][]byte{}, types: map[string]string{}}
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	if err != nil {
		t.Fatalf("aws config: %v", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
	})
	return NewS3PublisherWithClient(client, "screening", prefix, nil), rt
}

func TestPublishUploadsFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "natvssynt.csv")
	pngPath := filepath.Join(dir, "dashboard.png")
	if err := os.WriteFile(csvPath, []byte("Name,Type\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pngPath, []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatal(err)
	}

	pub, rt := newMockPublisher(t, "runs/latest/")
	if err := pub.Publish(context.Background(), csvPath, "", pngPath); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if got := string(rt.objects["screening/runs/latest/natvssynt.csv"]); got != "Name,Type\n" {
		t.Fatalf("unexpected csv object: %q (keys %v)", got, keys(rt.objects))
	}
	if rt.types["screening/runs/latest/dashboard.png"] != "image/png" {
		t.Fatalf("unexpected content type: %q", rt.types["screening/runs/latest/dashboard.png"])
	}
}

func TestPublishMissingFile(t *testing.T) {
	t.Parallel()

	pub, _ := newMockPublisher(t, "")
	if err := pub.Publish(context.Background(), filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	pub := NewS3PublisherWithClient(nil, "b", "", nil)
	if got := pub.Key("/tmp/out/natvssynt.xlsx"); got != "natvssynt.xlsx" {
		t.Fatalf("unexpected key %s", got)
	}
	pub = NewS3PublisherWithClient(nil, "b", "/screening/", nil)
	if got := pub.Key("dashboard.png"); got != "screening/dashboard.png" {
		t.Fatalf("unexpected key %s", got)
	}
}

func TestNewS3PublisherRequiresBucket(t *testing.T) {
	t.Parallel()

	if _, err := NewS3Publisher(context.Background(), Config{}, nil); err == nil {
		t.Fatalf("expected error without bucket")
	}
}

// decodeChunked unwraps a single-chunk aws-chunked payload.
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 {
		return nil, false
	}
	size, err := strconv.ParseInt(strings.SplitN(parts[0], ";", 2)[0], 16, 64)
	if err != nil || int64(len(parts[1])) != size || !strings.HasPrefix(parts[2], "0") {
		return nil, false
	}
	return []byte(parts[1]), true
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
