package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linknest/linknest-server/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(config.PlacesConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	}, nil)
	t.Cleanup(client.Close)

	return client
}

func newOfflineClient(t *testing.T) *Client {
	t.Helper()

	client := New(config.PlacesConfig{}, nil)
	t.Cleanup(client.Close)

	return client
}

const detailsJSON = `{
	"status": "OK",
	"result": {
		"place_id": "ChIJabc123",
		"name": "Ichiran Shibuya",
		"formatted_address": "1-22-7 Jinnan, Shibuya City, Tokyo",
		"rating": 4.4,
		"price_level": 2,
		"types": ["restaurant", "food", "point_of_interest", "establishment", "cafe", "bar"],
		"photos": [{"photo_reference": "photo-ref-1", "width": 800, "height": 600}]
	}
}`

func TestExtractPlace_URLOnlyMode(t *testing.T) {
	client := newOfflineClient(t)

	draft := client.ExtractPlace(context.Background(),
		"https://www.google.com/maps/place/Ichiran+Shibuya/@35.6595,139.7005,17z")

	require.NotNil(t, draft)
	assert.Equal(t, "Ichiran Shibuya", draft.Title)
	assert.Equal(t, "35.6595, 139.7005", draft.Location)
	assert.Equal(t, "Imported from Google Maps", draft.Description)
	assert.Empty(t, draft.TagNames)
}

func TestExtractPlace_DecodesPlaceSegment(t *testing.T) {
	client := newOfflineClient(t)

	draft := client.ExtractPlace(context.Background(),
		"https://www.google.com/maps/place/Caf%C3%A9+de+Flore/data")

	assert.Equal(t, "Café de Flore", draft.Title)
}

func TestExtractPlace_NoPlaceSegment(t *testing.T) {
	client := newOfflineClient(t)

	draft := client.ExtractPlace(context.Background(), "https://maps.app.goo.gl/xyz")

	require.NotNil(t, draft)
	assert.Equal(t, "New Place", draft.Title)
	assert.Equal(t, "https://maps.app.goo.gl/xyz", draft.URL)
	assert.Empty(t, draft.Location)
	assert.Empty(t, draft.TagNames)
}

func TestExtractPlace_InvalidURLStillReturnsDraft(t *testing.T) {
	client := newOfflineClient(t)

	draft := client.ExtractPlace(context.Background(), "::not a url::")

	require.NotNil(t, draft)
	assert.Equal(t, "New Place", draft.Title)
}

func TestExtractPlace_PlaceIDParam(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "ChIJabc123", r.URL.Query().Get("place_id"))
		w.Write([]byte(detailsJSON))
	}))

	draft := client.ExtractPlace(context.Background(),
		"https://www.google.com/maps/search/?api=1&place_id=ChIJabc123")

	require.NotNil(t, draft)
	assert.Equal(t, "Ichiran Shibuya", draft.Title)
	assert.Equal(t, "1-22-7 Jinnan, Shibuya City, Tokyo", draft.Location)
	assert.InDelta(t, 4.4, draft.Rating, 0.001)
	assert.Equal(t, 2, draft.PriceLevel)
	// Allow-listed types only, capped at three, title-cased
	assert.Equal(t, []string{"Restaurant", "Food", "Cafe"}, draft.TagNames)
	assert.Contains(t, draft.PreviewImage, "/photo?")
	assert.Contains(t, draft.PreviewImage, "photo-ref-1")
}

func TestExtractPlace_DataBlobResolvesViaTextSearch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/textsearch/json":
			assert.Equal(t, "Mount Takao", r.URL.Query().Get("query"))
			w.Write([]byte(`{"status": "OK", "results": [{"place_id": "ChIJabc123", "name": "Mount Takao"}]}`))
		case "/details/json":
			w.Write([]byte(detailsJSON))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	draft := client.ExtractPlace(context.Background(),
		"https://www.google.com/maps/place/Mount+Takao/@35.625,139.243,15z/data=!3m1!4b1!4m6!3m5")

	require.NotNil(t, draft)
	assert.Equal(t, "Ichiran Shibuya", draft.Title)
}

func TestExtractPlace_DetailsFailureFallsBack(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	draft := client.ExtractPlace(context.Background(),
		"https://www.google.com/maps/place/Mount+Takao/@35.625,139.243,15z?place_id=ChIJbroken")

	require.NotNil(t, draft)
	assert.Equal(t, "Mount Takao", draft.Title)
	assert.Equal(t, "35.625, 139.243", draft.Location)
	assert.Equal(t, "Imported from Google Maps", draft.Description)
	assert.Empty(t, draft.TagNames)
}

func TestExtractPlace_ZeroResultsFallsBack(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))

	draft := client.ExtractPlace(context.Background(),
		"https://www.google.com/maps/place/Nowhere+Special/data=!3m1")

	require.NotNil(t, draft)
	assert.Equal(t, "Nowhere Special", draft.Title)
}

func TestTagNamesFromTypes(t *testing.T) {
	tests := []struct {
		name     string
		types    []string
		expected []string
	}{
		{
			name:     "filters to allow-list",
			types:    []string{"establishment", "restaurant", "political"},
			expected: []string{"Restaurant"},
		},
		{
			name:     "caps at three",
			types:    []string{"restaurant", "food", "cafe", "bar"},
			expected: []string{"Restaurant", "Food", "Cafe"},
		},
		{
			name:     "humanizes compound types",
			types:    []string{"tourist_attraction"},
			expected: []string{"Tourist Attraction"},
		},
		{
			name:     "nothing interesting",
			types:    []string{"street_address", "political"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tagNamesFromTypes(tt.types))
		})
	}
}
