package search

import (
	"context"
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams describes a search request against the item index.
type SearchParams struct {
	// Query is the free-text query. Empty matches all documents.
	Query string

	// ListID restricts results to items in a single list.
	ListID string

	// TagSlugs restricts results to items carrying all of these tags.
	TagSlugs []string

	// Completed filters by completion state when non-nil.
	Completed *bool

	// Limit is the maximum number of hits to return (default 25, max 100).
	Limit int

	// Offset skips the first N hits for pagination.
	Offset int

	// SortBy is the field to sort on: "relevance", "created_at",
	// "updated_at", or "title". Defaults to relevance.
	SortBy string

	// SortOrder is "asc" or "desc". Defaults to "desc".
	SortOrder string

	// IncludeFacets adds tag facet counts to the result.
	IncludeFacets bool

	// Highlight enables match highlighting on stored fields.
	Highlight bool
}

// SearchHit is a single search result.
type SearchHit struct {
	ID         string              `json:"id"`
	ListID     string              `json:"list_id,omitempty"`
	Title      string              `json:"title"`
	Location   string              `json:"location,omitempty"`
	Tags       []string            `json:"tags,omitempty"`
	Completed  bool                `json:"completed"`
	Score      float64             `json:"score"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

// FacetCount is a single facet bucket.
type FacetCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// SearchResult is the full response for a search request.
type SearchResult struct {
	Hits     []SearchHit             `json:"hits"`
	Total    uint64                  `json:"total"`
	Took     time.Duration           `json:"took"`
	Facets   map[string][]FacetCount `json:"facets,omitempty"`
	MaxScore float64                 `json:"max_score"`
}

// buildSearchQuery constructs the Bleve query from search parameters.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if params.Query != "" {
		// Free-text matching across title, description, and location.
		// Title matches are boosted; fuzzy and prefix variants catch
		// typos and partial words at lower weight.
		textQueries := []query.Query{}

		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleMatch)

		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		textQueries = append(textQueries, descMatch)

		locationMatch := bleve.NewMatchQuery(params.Query)
		locationMatch.SetField("location")
		locationMatch.SetBoost(2.0)
		textQueries = append(textQueries, locationMatch)

		titleFuzzy := bleve.NewFuzzyQuery(params.Query)
		titleFuzzy.SetField("title")
		titleFuzzy.SetFuzziness(1)
		titleFuzzy.SetBoost(0.8)
		textQueries = append(textQueries, titleFuzzy)

		if len(params.Query) >= 2 {
			titlePrefix := bleve.NewPrefixQuery(params.Query)
			titlePrefix.SetField("title")
			titlePrefix.SetBoost(0.5)
			textQueries = append(textQueries, titlePrefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.ListID != "" {
		listQuery := bleve.NewTermQuery(params.ListID)
		listQuery.SetField("list_id")
		queries = append(queries, listQuery)
	}

	for _, slug := range params.TagSlugs {
		tagQuery := bleve.NewTermQuery(slug)
		tagQuery.SetField("tags")
		queries = append(queries, tagQuery)
	}

	if params.Completed != nil {
		completedQuery := bleve.NewBoolFieldQuery(*params.Completed)
		completedQuery.SetField("completed")
		queries = append(queries, completedQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting applies sort order to the search request.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	order := params.SortOrder
	if order == "" {
		order = "desc"
	}

	prefix := "-"
	if order == "asc" {
		prefix = ""
	}

	switch params.SortBy {
	case "created_at":
		req.SortBy([]string{prefix + "created_at"})
	case "updated_at":
		req.SortBy([]string{prefix + "updated_at"})
	case "title":
		req.SortBy([]string{prefix + "title"})
	default:
		// Relevance sorting, best matches first
		req.SortBy([]string{"-_score"})
	}
}

// Search executes a search against the item index.
func (si *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	si.mu.RLock()
	defer si.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = 25
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	q := buildSearchQuery(params)

	req := bleve.NewSearchRequestOptions(q, params.Limit, params.Offset, false)
	req.Fields = []string{"title", "list_id", "location", "tags", "completed"}

	addSorting(req, params)

	if params.Highlight {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("title")
		req.Highlight.AddField("location")
	}

	if params.IncludeFacets {
		req.AddFacet("tags", bleve.NewFacetRequest("tags", 20))
	}

	start := time.Now()
	res, err := si.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("executing search: %w", err)
	}

	result := &SearchResult{
		Hits:     make([]SearchHit, 0, len(res.Hits)),
		Total:    res.Total,
		Took:     time.Since(start),
		MaxScore: res.MaxScore,
	}

	for _, hit := range res.Hits {
		sh := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if title, ok := hit.Fields["title"].(string); ok {
			sh.Title = title
		}
		if listID, ok := hit.Fields["list_id"].(string); ok {
			sh.ListID = listID
		}
		if location, ok := hit.Fields["location"].(string); ok {
			sh.Location = location
		}
		if completed, ok := hit.Fields["completed"].(bool); ok {
			sh.Completed = completed
		}

		// Tags come back as a string for one value, []any for many
		switch tags := hit.Fields["tags"].(type) {
		case string:
			sh.Tags = []string{tags}
		case []any:
			for _, t := range tags {
				if s, ok := t.(string); ok {
					sh.Tags = append(sh.Tags, s)
				}
			}
		}

		if len(hit.Fragments) > 0 {
			sh.Highlights = make(map[string][]string, len(hit.Fragments))
			for field, fragments := range hit.Fragments {
				sh.Highlights[field] = fragments
			}
		}

		result.Hits = append(result.Hits, sh)
	}

	if params.IncludeFacets && res.Facets != nil {
		result.Facets = make(map[string][]FacetCount)
		for name, facet := range res.Facets {
			counts := make([]FacetCount, 0, len(facet.Terms.Terms()))
			for _, term := range facet.Terms.Terms() {
				counts = append(counts, FacetCount{
					Term:  term.Term,
					Count: term.Count,
				})
			}
			result.Facets[name] = counts
		}
	}

	return result, nil
}
