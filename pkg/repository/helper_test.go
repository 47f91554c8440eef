package repository_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/repository/firestore"
	"github.com/secmon-lab/safetydocs/pkg/repository/memory"
)

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	prefix := "test_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	repo, err := firestore.New(context.Background(), projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

// runBoth runs fn against every backend that is available.
func runBoth(t *testing.T, fn func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository)) {
	t.Run("memory", func(t *testing.T) { fn(t, newMemoryRepository) })
	t.Run("firestore", func(t *testing.T) { fn(t, newFirestoreRepository) })
}

// Firestore keeps microseconds only.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func intPtr(v int) *int { return &v }
