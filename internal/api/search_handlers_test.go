package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchItems_ByQuery(t *testing.T) {
	ts := setupTestServer(t)
	list := ts.createList(t, "Places to Eat")
	ts.createItem(t, list.ID, "Ichiran Ramen")
	ts.createItem(t, list.ID, "Sushi Dai")
	ts.waitForIndexedItems(t, 2)

	resp := ts.api.Get("/api/v1/search?q=ramen")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[SearchResponse](t, resp.Body.Bytes())
	require.Equal(t, uint64(1), envelope.Data.Total)
	assert.Equal(t, "Ichiran Ramen", envelope.Data.Hits[0].Title)
}

func TestSearchItems_FilterByList(t *testing.T) {
	ts := setupTestServer(t)
	eat := ts.createList(t, "Places to Eat")
	hike := ts.createList(t, "Hikes to Do")
	ts.createItem(t, eat.ID, "Mount Fuji View Restaurant")
	ts.createItem(t, hike.ID, "Mount Fuji Trail")
	ts.waitForIndexedItems(t, 2)

	resp := ts.api.Get("/api/v1/search?q=fuji&list_id=" + hike.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[SearchResponse](t, resp.Body.Bytes())
	require.Equal(t, uint64(1), envelope.Data.Total)
	assert.Equal(t, hike.ID, envelope.Data.Hits[0].ListID)
}

func TestSearchItems_FilterByTag(t *testing.T) {
	ts := setupTestServer(t)
	list := ts.createList(t, "Places to Eat")
	ts.createItem(t, list.ID, "Ichiran", "ramen")
	ts.createItem(t, list.ID, "Sushi Dai", "sushi")
	ts.waitForIndexedItems(t, 2)

	resp := ts.api.Get("/api/v1/search?tags=ramen")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[SearchResponse](t, resp.Body.Bytes())
	require.Equal(t, uint64(1), envelope.Data.Total)
	assert.Equal(t, "Ichiran", envelope.Data.Hits[0].Title)
	assert.Equal(t, []string{"ramen"}, envelope.Data.Hits[0].Tags)
}

func TestSearchItems_Facets(t *testing.T) {
	ts := setupTestServer(t)
	list := ts.createList(t, "Places to Eat")
	ts.createItem(t, list.ID, "Ichiran", "ramen")
	ts.createItem(t, list.ID, "Afuri", "ramen")
	ts.waitForIndexedItems(t, 2)

	resp := ts.api.Get("/api/v1/search?facets=true")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[SearchResponse](t, resp.Body.Bytes())
	require.Contains(t, envelope.Data.Facets, "tags")
	require.Len(t, envelope.Data.Facets["tags"], 1)
	assert.Equal(t, "ramen", envelope.Data.Facets["tags"][0].Term)
	assert.Equal(t, 2, envelope.Data.Facets["tags"][0].Count)
}

func TestSearchItems_DeletedItemsDisappear(t *testing.T) {
	ts := setupTestServer(t)
	list := ts.createList(t, "Places to Eat")
	item := ts.createItem(t, list.ID, "Ephemeral Cafe")
	ts.waitForIndexedItems(t, 1)

	resp := ts.api.Delete("/api/v1/items/" + item.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	ts.waitForIndexedItems(t, 0)

	resp = ts.api.Get("/api/v1/search?q=ephemeral")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[SearchResponse](t, resp.Body.Bytes())
	assert.Equal(t, uint64(0), envelope.Data.Total)
}
