package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linknest/linknest-server/internal/domain"
)

func TestCreateTag(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestTag(t, store, "tag-001", "Date Night", "date-night")

	retrieved, err := store.GetTagByID(ctx, "tag-001")
	require.NoError(t, err)
	assert.Equal(t, "Date Night", retrieved.Name)
	assert.Equal(t, "date-night", retrieved.Slug)
}

func TestCreateTag_DuplicateSlug(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestTag(t, store, "tag-001", "Date Night", "date-night")

	err := store.CreateTag(ctx, &domain.Tag{ID: "tag-002", Name: "DATE NIGHT", Slug: "date-night"})
	assert.ErrorIs(t, err, ErrTagExists)
}

func TestGetTagBySlug(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestTag(t, store, "tag-001", "Ramen", "ramen")

	retrieved, err := store.GetTagBySlug(ctx, "ramen")
	require.NoError(t, err)
	assert.Equal(t, "tag-001", retrieved.ID)

	_, err = store.GetTagBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestListTags_SortedByNameWithCounts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestList(t, store, "list-001", "Places to Eat")
	makeTestTag(t, store, "tag-ramen", "Ramen", "ramen")
	makeTestTag(t, store, "tag-brunch", "Brunch", "brunch")

	makeTestItem(t, store, "item-1", "list-001", "Ichiran", "tag-ramen")
	makeTestItem(t, store, "item-2", "list-001", "Tsuta", "tag-ramen")

	tags, err := store.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	// Sorted by name ascending.
	assert.Equal(t, "Brunch", tags[0].Name)
	assert.Equal(t, "Ramen", tags[1].Name)

	// Counts projected from the association index.
	assert.Equal(t, 0, tags[0].ItemCount)
	assert.Equal(t, 2, tags[1].ItemCount)
}

func TestGetTagSummary(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestList(t, store, "list-001", "Places to Eat")
	makeTestTag(t, store, "tag-ramen", "Ramen", "ramen")
	makeTestItem(t, store, "item-1", "list-001", "Ichiran", "tag-ramen")

	summary, err := store.GetTagSummary(ctx, "tag-ramen")
	require.NoError(t, err)
	assert.Equal(t, "Ramen", summary.Name)
	assert.Equal(t, 1, summary.ItemCount)
}

func TestUpdateTag_Rename(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	tag := makeTestTag(t, store, "tag-001", "Ramen", "ramen")

	tag.Name = "Noodles"
	tag.Slug = "noodles"
	tag.Touch()
	require.NoError(t, store.UpdateTag(ctx, tag))

	// New slug resolves, old slug does not.
	retrieved, err := store.GetTagBySlug(ctx, "noodles")
	require.NoError(t, err)
	assert.Equal(t, "tag-001", retrieved.ID)

	_, err = store.GetTagBySlug(ctx, "ramen")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestUpdateTag_SlugConflict(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestTag(t, store, "tag-001", "Ramen", "ramen")
	other := makeTestTag(t, store, "tag-002", "Sushi", "sushi")

	other.Name = "Ramen"
	other.Slug = "ramen"
	err := store.UpdateTag(ctx, other)
	assert.ErrorIs(t, err, ErrTagExists)
}

func TestUpdateTag_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.UpdateTag(context.Background(), &domain.Tag{ID: "tag-missing", Name: "Ghost", Slug: "ghost"})
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestDeleteTag_DetachesFromItems(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestList(t, store, "list-001", "Places to Eat")
	makeTestTag(t, store, "tag-ramen", "Ramen", "ramen")
	makeTestTag(t, store, "tag-tokyo", "Tokyo", "tokyo")
	makeTestItem(t, store, "item-1", "list-001", "Ichiran", "tag-ramen", "tag-tokyo")
	makeTestItem(t, store, "item-2", "list-001", "Tsuta", "tag-ramen")

	require.NoError(t, store.DeleteTag(ctx, "tag-ramen"))

	// Tag record and slug index are gone.
	_, err := store.GetTagByID(ctx, "tag-ramen")
	assert.ErrorIs(t, err, ErrTagNotFound)
	_, err = store.GetTagBySlug(ctx, "ramen")
	assert.ErrorIs(t, err, ErrTagNotFound)

	// Items lost the deleted tag but keep their other tags.
	item1, err := store.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tag-tokyo"}, item1.TagIDs)

	item2, err := store.GetItem(ctx, "item-2")
	require.NoError(t, err)
	assert.Empty(t, item2.TagIDs)
}

func TestDeleteTag_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.DeleteTag(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestFindOrCreateTagBySlug_CreatesNew(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	tag, created, err := store.FindOrCreateTagBySlug(ctx, "date-night", "Date Night")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "date-night", tag.Slug)
	assert.Equal(t, "Date Night", tag.Name)
	assert.NotEmpty(t, tag.ID)
}

func TestFindOrCreateTagBySlug_ReturnsExisting(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	existing := makeTestTag(t, store, "tag-001", "Date Night", "date-night")

	tag, created, err := store.FindOrCreateTagBySlug(ctx, "date-night", "DATE NIGHT")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, tag.ID)
	// Existing tag keeps its original display name.
	assert.Equal(t, "Date Night", tag.Name)
}

func TestGetTagsForItem_SkipsMissing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	makeTestList(t, store, "list-001", "Places to Eat")
	makeTestTag(t, store, "tag-ramen", "Ramen", "ramen")

	item := &domain.Item{
		ID:     "item-1",
		ListID: "list-001",
		Title:  "Ichiran",
		TagIDs: []string{"tag-ramen", "tag-gone"},
	}

	tags, err := store.GetTagsForItem(ctx, item)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "ramen", tags[0].Slug)
}
