// Package archive stores copies of rendered reports.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
	"github.com/secmon-lab/safetydocs/pkg/utils/safe"
	"google.golang.org/api/option"
)

// Service stores a rendered report and returns its location
type Service interface {
	Put(ctx context.Context, obj Object) (string, error)
}

// Object is one report file
type Object struct {
	ProjectID   string
	Kind        string
	FileName    string
	GeneratedAt time.Time
	Data        []byte
}

// Key builds the object path: <project>/<kind>/<yyyymmddThhmmss>_<file>
func (o Object) Key(prefix string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(o.FileName)
	key := path.Join(o.ProjectID, o.Kind, o.GeneratedAt.UTC().Format("20060102T150405")+"_"+name)
	if prefix != "" {
		key = path.Join(prefix, key)
	}
	return key
}

type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

type GCSOption func(*gcsConfig)

type gcsConfig struct {
	prefix     string
	clientOpts []option.ClientOption
}

// WithPrefix puts every object below prefix
func WithPrefix(prefix string) GCSOption {
	return func(c *gcsConfig) {
		c.prefix = strings.Trim(prefix, "/")
	}
}

// WithClientOptions passes options to the storage client
func WithClientOptions(opts ...option.ClientOption) GCSOption {
	return func(c *gcsConfig) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	var cfg gcsConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := storage.NewClient(ctx, cfg.clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	return &GCS{client: client, bucket: bucket, prefix: cfg.prefix}, nil
}

func (g *GCS) Put(ctx context.Context, obj Object) (string, error) {
	key := obj.Key(g.prefix)

	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/pdf"
	w.ContentDisposition = fmt.Sprintf("attachment; filename=%q", obj.FileName)
	w.Metadata = map[string]string{
		"project_id": obj.ProjectID,
		"kind":       obj.Kind,
	}

	if _, err := bytes.NewReader(obj.Data).WriteTo(w); err != nil {
		safe.Close(ctx, w, "key", key)
		return "", goerr.Wrap(err, "failed to write report object", goerr.V("bucket", g.bucket), goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize report object", goerr.V("bucket", g.bucket), goerr.V("key", key))
	}

	location := fmt.Sprintf("gs://%s/%s", g.bucket, key)
	logging.From(ctx).Info("report archived", "location", location, "size", len(obj.Data))
	return location, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

// Memory keeps archived reports in process, for tests and local runs
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) Put(ctx context.Context, obj Object) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := obj.Key("")
	m.objects[key] = bytes.Clone(obj.Data)
	return "mem://" + key, nil
}

// Keys returns the stored object keys
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.objects[key]
	return v, ok
}
