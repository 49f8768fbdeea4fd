package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linknest/linknest-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search items",
		Description: "Full-text search across items with list, tag, and completion filters",
		Tags:        []string{"Search"},
	}, s.handleSearchItems)
}

// === DTOs ===

// SearchInput contains search query parameters.
type SearchInput struct {
	Query     string   `query:"q" doc:"Free-text query; empty matches all items"`
	ListID    string   `query:"list_id" doc:"Restrict to a single list"`
	Tags      []string `query:"tags" doc:"Restrict to items carrying all of these tag slugs"`
	Completed string   `query:"completed" enum:"true,false," doc:"Filter by completion state"`
	Limit     int      `query:"limit" minimum:"1" maximum:"100" doc:"Maximum hits to return (default 25)"`
	Offset    int      `query:"offset" minimum:"0" doc:"Hits to skip for pagination"`
	SortBy    string   `query:"sort" enum:"relevance,created_at,updated_at,title," doc:"Sort field (default relevance)"`
	SortOrder string   `query:"order" enum:"asc,desc," doc:"Sort direction (default desc)"`
	Facets    bool     `query:"facets" doc:"Include tag facet counts"`
	Highlight bool     `query:"highlight" doc:"Include match highlights"`
}

// SearchHitResponse is a single search result.
type SearchHitResponse struct {
	ID         string              `json:"id" doc:"Item ID"`
	ListID     string              `json:"list_id,omitempty" doc:"Owning list ID"`
	Title      string              `json:"title" doc:"Item title"`
	Location   string              `json:"location,omitempty" doc:"Location text"`
	Tags       []string            `json:"tags,omitempty" doc:"Tag slugs"`
	Completed  bool                `json:"completed" doc:"Completion flag"`
	Score      float64             `json:"score" doc:"Relevance score"`
	Highlights map[string][]string `json:"highlights,omitempty" doc:"Highlighted fragments by field"`
}

// FacetCountResponse is a single facet bucket.
type FacetCountResponse struct {
	Term  string `json:"term" doc:"Facet term"`
	Count int    `json:"count" doc:"Documents with this term"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Hits   []SearchHitResponse             `json:"hits" doc:"Matching items"`
	Total  uint64                          `json:"total" doc:"Total matches"`
	TookMs int64                           `json:"took_ms" doc:"Query duration in milliseconds"`
	Facets map[string][]FacetCountResponse `json:"facets,omitempty" doc:"Facet counts when requested"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// === Handlers ===

func (s *Server) handleSearchItems(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.SearchParams{
		Query:         input.Query,
		ListID:        input.ListID,
		TagSlugs:      input.Tags,
		Limit:         input.Limit,
		Offset:        input.Offset,
		SortOrder:     input.SortOrder,
		IncludeFacets: input.Facets,
		Highlight:     input.Highlight,
	}

	if input.SortBy != "" && input.SortBy != "relevance" {
		params.SortBy = input.SortBy
	}

	switch input.Completed {
	case "true":
		completed := true
		params.Completed = &completed
	case "false":
		completed := false
		params.Completed = &completed
	}

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHitResponse, len(result.Hits))
	for i, hit := range result.Hits {
		hits[i] = SearchHitResponse{
			ID:         hit.ID,
			ListID:     hit.ListID,
			Title:      hit.Title,
			Location:   hit.Location,
			Tags:       hit.Tags,
			Completed:  hit.Completed,
			Score:      hit.Score,
			Highlights: hit.Highlights,
		}
	}

	resp := SearchResponse{
		Hits:   hits,
		Total:  result.Total,
		TookMs: result.Took.Milliseconds(),
	}

	if len(result.Facets) > 0 {
		resp.Facets = make(map[string][]FacetCountResponse, len(result.Facets))
		for name, counts := range result.Facets {
			fc := make([]FacetCountResponse, len(counts))
			for i, c := range counts {
				fc[i] = FacetCountResponse{Term: c.Term, Count: c.Count}
			}
			resp.Facets[name] = fc
		}
	}

	return &SearchOutput{Body: resp}, nil
}
