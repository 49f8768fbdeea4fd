package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linknest/linknest-server/internal/domain"
)

func TestCreateList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	list := &domain.List{
		ID:        "list-001",
		Name:      "Places to Eat",
		Icon:      "🍕",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := store.CreateList(ctx, list)
	require.NoError(t, err)

	// Verify list was created.
	retrieved, err := store.GetList(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, retrieved.ID)
	assert.Equal(t, list.Name, retrieved.Name)
	assert.Equal(t, list.Icon, retrieved.Icon)
}

func TestCreateList_Duplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	makeTestList(t, store, "list-001", "Places to Eat")

	err := store.CreateList(ctx, &domain.List{ID: "list-001", Name: "Again"})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateList)
}

func TestGetList_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetList(context.Background(), "nonexistent")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestUpdateList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	list := makeTestList(t, store, "list-001", "Places to Eat")

	list.Name = "Places to Drink"
	list.Touch()
	require.NoError(t, store.UpdateList(ctx, list))

	retrieved, err := store.GetList(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Places to Drink", retrieved.Name)
}

func TestUpdateList_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.UpdateList(context.Background(), &domain.List{ID: "list-missing", Name: "Nope"})
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestListLists_SortedWithCounts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestList(t, store, "list-b", "Books to Read")
	makeTestList(t, store, "list-a", "Art to See")

	makeTestItem(t, store, "item-1", "list-b", "Dune")
	makeTestItem(t, store, "item-2", "list-b", "Hyperion")

	summaries, err := store.ListLists(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Sorted by name ascending.
	assert.Equal(t, "Art to See", summaries[0].Name)
	assert.Equal(t, "Books to Read", summaries[1].Name)

	// Counts projected from the item index.
	assert.Equal(t, 0, summaries[0].ItemCount)
	assert.Equal(t, 2, summaries[1].ItemCount)
}

func TestGetListSummary(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestList(t, store, "list-001", "Hikes to Do")
	makeTestItem(t, store, "item-1", "list-001", "Half Dome")

	summary, err := store.GetListSummary(ctx, "list-001")
	require.NoError(t, err)
	assert.Equal(t, "Hikes to Do", summary.Name)
	assert.Equal(t, 1, summary.ItemCount)
}

func TestDeleteList_CascadesItems(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestList(t, store, "list-001", "Places to Eat")
	makeTestList(t, store, "list-002", "Hikes to Do")
	makeTestTag(t, store, "tag-001", "Ramen", "ramen")

	makeTestItem(t, store, "item-1", "list-001", "Ichiran", "tag-001")
	makeTestItem(t, store, "item-2", "list-001", "Tsuta")
	makeTestItem(t, store, "item-3", "list-002", "Half Dome")

	require.NoError(t, store.DeleteList(ctx, "list-001"))

	// List and its items are gone.
	_, err := store.GetList(ctx, "list-001")
	assert.ErrorIs(t, err, ErrListNotFound)
	_, err = store.GetItem(ctx, "item-1")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = store.GetItem(ctx, "item-2")
	assert.ErrorIs(t, err, ErrItemNotFound)

	// Items in other lists survive.
	survivor, err := store.GetItem(ctx, "item-3")
	require.NoError(t, err)
	assert.Equal(t, "Half Dome", survivor.Title)

	// Tag association index no longer counts the deleted item.
	summary, err := store.GetTagSummary(ctx, "tag-001")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ItemCount)
}

func TestDeleteList_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.DeleteList(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestTouchList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	list := makeTestList(t, store, "list-001", "Places to Eat")
	before := list.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, store.TouchList(ctx, "list-001"))

	retrieved, err := store.GetList(ctx, "list-001")
	require.NoError(t, err)
	assert.True(t, retrieved.UpdatedAt.After(before))
}

func TestEnsureStarterLists_FirstRun(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	result, err := store.EnsureStarterLists(ctx)
	require.NoError(t, err)
	assert.True(t, result.IsFirstRun)
	assert.Len(t, result.Lists, 4)

	names := make([]string, len(result.Lists))
	for i, l := range result.Lists {
		names[i] = l.Name
	}
	assert.Contains(t, names, "Places to Eat")
	assert.Contains(t, names, "Hikes to Do")
	assert.Contains(t, names, "Books to Read")
	assert.Contains(t, names, "Movies to Watch")
}

func TestEnsureStarterLists_Idempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	first, err := store.EnsureStarterLists(ctx)
	require.NoError(t, err)
	require.True(t, first.IsFirstRun)

	second, err := store.EnsureStarterLists(ctx)
	require.NoError(t, err)
	assert.False(t, second.IsFirstRun)
	assert.Len(t, second.Lists, 4)

	summaries, err := store.ListLists(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 4)
}

func TestEnsureStarterLists_SkipsWhenListsExist(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestList(t, store, "list-001", "My Own List")

	result, err := store.EnsureStarterLists(ctx)
	require.NoError(t, err)
	assert.False(t, result.IsFirstRun)
	require.Len(t, result.Lists, 1)
	assert.Equal(t, "My Own List", result.Lists[0].Name)
}
