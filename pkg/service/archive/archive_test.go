package archive_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/service/archive"
)

func sampleObject() archive.Object {
	return archive.Object{
		ProjectID:   "p1",
		Kind:        "gbu",
		FileName:    "GBU_Fest/2026.pdf",
		GeneratedAt: time.Date(2026, 6, 1, 12, 30, 0, 0, time.UTC),
		Data:        []byte("%PDF-1.3"),
	}
}

func TestObjectKey(t *testing.T) {
	obj := sampleObject()
	gt.Value(t, obj.Key("")).Equal("p1/gbu/20260601T123000_GBU_Fest_2026.pdf")
	gt.Value(t, obj.Key("reports")).Equal("reports/p1/gbu/20260601T123000_GBU_Fest_2026.pdf")
}

func TestMemory(t *testing.T) {
	m := archive.NewMemory()
	loc, err := m.Put(context.Background(), sampleObject())
	gt.NoError(t, err).Required()
	gt.Value(t, loc).Equal("mem://p1/gbu/20260601T123000_GBU_Fest_2026.pdf")

	data, ok := m.Get("p1/gbu/20260601T123000_GBU_Fest_2026.pdf")
	gt.Bool(t, ok).True()
	gt.Value(t, string(data)).Equal("%PDF-1.3")
	gt.Array(t, m.Keys()).Length(1)
}

func TestNewGCSRequiresBucket(t *testing.T) {
	_, err := archive.NewGCS(context.Background(), "")
	gt.Error(t, err)
}

func TestGCS(t *testing.T) {
	bucket := os.Getenv("TEST_GCS_BUCKET")
	if bucket == "" {
		t.Skip("TEST_GCS_BUCKET not set")
	}

	ctx := context.Background()
	g, err := archive.NewGCS(ctx, bucket, archive.WithPrefix("test/"+uuid.NewString()))
	gt.NoError(t, err).Required()
	t.Cleanup(func() { gt.NoError(t, g.Close()) })

	loc, err := g.Put(ctx, sampleObject())
	gt.NoError(t, err).Required()
	gt.String(t, loc).Contains("gs://" + bucket + "/test/")
}
