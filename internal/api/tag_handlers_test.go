package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag_NormalizesName(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/tags", map[string]any{"name": "Date Night"})
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[TagResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Date Night", envelope.Data.Name)
	assert.Equal(t, "date-night", envelope.Data.Slug)
}

func TestCreateTag_ReusesExistingSlug(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/tags", map[string]any{"name": "Date Night"})
	require.Equal(t, http.StatusOK, resp.Code)
	first := decodeEnvelope[TagResponse](t, resp.Body.Bytes())

	resp = ts.api.Post("/api/v1/tags", map[string]any{"name": "date-night"})
	require.Equal(t, http.StatusOK, resp.Code)
	second := decodeEnvelope[TagResponse](t, resp.Body.Bytes())

	assert.Equal(t, first.Data.ID, second.Data.ID)
	assert.Equal(t, "Date Night", second.Data.Name)
}

func TestCreateTag_EmptyAfterNormalization(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/tags", map[string]any{"name": "🍜🍜🍜"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListTags_WithCounts(t *testing.T) {
	ts := setupTestServer(t)
	list := ts.createList(t, "Places to Eat")
	ts.createItem(t, list.ID, "Ichiran", "ramen")
	ts.createItem(t, list.ID, "Afuri", "ramen")
	ts.createItem(t, list.ID, "Bar High Five", "cocktails")

	resp := ts.api.Get("/api/v1/tags")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[ListTagsResponse](t, resp.Body.Bytes())
	require.Len(t, envelope.Data.Tags, 2)
	assert.Equal(t, "cocktails", envelope.Data.Tags[0].Slug)
	assert.Equal(t, 1, envelope.Data.Tags[0].ItemCount)
	assert.Equal(t, "ramen", envelope.Data.Tags[1].Slug)
	assert.Equal(t, 2, envelope.Data.Tags[1].ItemCount)
}

func TestGetTagBySlug(t *testing.T) {
	ts := setupTestServer(t)
	list := ts.createList(t, "Places to Eat")
	ts.createItem(t, list.ID, "Ichiran", "ramen")

	resp := ts.api.Get("/api/v1/tags/ramen")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[TagResponse](t, resp.Body.Bytes())
	assert.Equal(t, "ramen", envelope.Data.Slug)
	assert.Equal(t, 1, envelope.Data.ItemCount)
}

func TestGetTag_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tags/nonexistent")
	require.Equal(t, http.StatusNotFound, resp.Code)

	envelope := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.False(t, envelope.Success)
	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestRenameTag(t *testing.T) {
	ts := setupTestServer(t)
	list := ts.createList(t, "Hikes to Do")
	ts.createItem(t, list.ID, "Mount Takao", "outdors")

	resp := ts.api.Patch("/api/v1/tags/outdors", map[string]any{"name": "Outdoors"})
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[TagResponse](t, resp.Body.Bytes())
	assert.Equal(t, "outdoors", envelope.Data.Slug)

	// Old slug is gone, item kept the tag under the new slug
	resp = ts.api.Get("/api/v1/tags/outdors")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/tags/outdoors/items")
	require.Equal(t, http.StatusOK, resp.Code)
	items := decodeEnvelope[TagItemsResponse](t, resp.Body.Bytes())
	require.Len(t, items.Data.Items, 1)
	assert.Equal(t, "Mount Takao", items.Data.Items[0].Title)
}

func TestDeleteTag_DetachesFromItems(t *testing.T) {
	ts := setupTestServer(t)
	list := ts.createList(t, "Places to Eat")
	item := ts.createItem(t, list.ID, "Ichiran", "ramen", "cheap")

	resp := ts.api.Delete("/api/v1/tags/ramen")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/items/" + item.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[ItemResponse](t, resp.Body.Bytes())
	require.Len(t, envelope.Data.Tags, 1)
	assert.Equal(t, "cheap", envelope.Data.Tags[0].Slug)
}

func TestGetTagItems(t *testing.T) {
	ts := setupTestServer(t)
	eat := ts.createList(t, "Places to Eat")
	hike := ts.createList(t, "Hikes to Do")
	ts.createItem(t, eat.ID, "Ichiran", "tokyo")
	ts.createItem(t, hike.ID, "Mount Takao", "tokyo")
	ts.createItem(t, eat.ID, "Untagged")

	resp := ts.api.Get("/api/v1/tags/tokyo/items")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[TagItemsResponse](t, resp.Body.Bytes())
	assert.Len(t, envelope.Data.Items, 2)
}
