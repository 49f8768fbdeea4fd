package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linknest/linknest-server/internal/search"
	"github.com/linknest/linknest-server/internal/store"
)

func setupSearchService(t *testing.T) (*SearchService, *ItemService, *store.Store) {
	t.Helper()

	testStore := setupTestStore(t)

	tmpDir, err := os.MkdirTemp("", "linknest-search-service-test-*")
	require.NoError(t, err)

	index, err := search.NewSearchIndex(search.Options{DataPath: tmpDir})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = index.Close()
		_ = os.RemoveAll(tmpDir)
	})

	svc := NewSearchService(index, testStore, testLogger())
	testStore.SetSearchIndexer(svc)

	return svc, NewItemService(testStore, testLogger()), testStore
}

// waitForIndex polls until the index holds the expected number of
// documents. Item writes reach the index asynchronously.
func waitForIndex(t *testing.T, svc *SearchService, want uint64) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		count, err := svc.index.DocumentCount()
		require.NoError(t, err)
		if count == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("index never reached %d documents", want)
}

func TestSearchService_ItemWritesReachIndex(t *testing.T) {
	svc, items, testStore := setupSearchService(t)
	ctx := context.Background()
	listID := createTestList(t, testStore, "Places to Eat")

	item, err := items.CreateItem(ctx, CreateItemRequest{
		ListID: listID,
		Title:  "Ichiran Shibuya",
		Tags:   []string{"ramen"},
	})
	require.NoError(t, err)
	waitForIndex(t, svc, 1)

	result, err := svc.Search(ctx, search.SearchParams{Query: "ichiran"})
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.Total)
	assert.Equal(t, item.ID, result.Hits[0].ID)
	assert.Equal(t, []string{"ramen"}, result.Hits[0].Tags)

	require.NoError(t, items.DeleteItem(ctx, item.ID))
	waitForIndex(t, svc, 0)
}

func TestSearchService_RebuildFromStore(t *testing.T) {
	svc, items, testStore := setupSearchService(t)
	ctx := context.Background()
	listID := createTestList(t, testStore, "Hikes to Do")

	_, err := items.CreateItem(ctx, CreateItemRequest{ListID: listID, Title: "Mount Takao"})
	require.NoError(t, err)
	_, err = items.CreateItem(ctx, CreateItemRequest{ListID: listID, Title: "Mount Mitake"})
	require.NoError(t, err)
	waitForIndex(t, svc, 2)

	require.NoError(t, svc.RebuildIndex(ctx))

	count, err := svc.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	result, err := svc.Search(ctx, search.SearchParams{Query: "takao"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
}

func TestSearchService_SyncSkipsWhenCurrent(t *testing.T) {
	svc, items, testStore := setupSearchService(t)
	ctx := context.Background()
	listID := createTestList(t, testStore, "Movies to Watch")

	_, err := items.CreateItem(ctx, CreateItemRequest{ListID: listID, Title: "Tampopo"})
	require.NoError(t, err)
	waitForIndex(t, svc, 1)

	require.NoError(t, svc.SyncIndex(ctx))

	count, err := svc.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}
