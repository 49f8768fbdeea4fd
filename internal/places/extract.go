package places

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/linknest/linknest-server/internal/util"
)

const importedDescription = "Imported from Google Maps"

var (
	placeSegmentRe = regexp.MustCompile(`/place/([^/]+)`)
	coordsRe       = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	dataBlobRe     = regexp.MustCompile(`data=[!\w.%-]+`)
)

// ExtractPlace turns a Google Maps share link into an item draft.
//
// Resolution order:
//  1. A place_id query parameter is used directly.
//  2. A link carrying an encoded data blob has its place name text-searched
//     against the API, taking the first result's place id.
//  3. A resolved id is enriched via the details endpoint (name, address,
//     rating, price level, category tags, photo).
//  4. Anything else, including any network or parsing failure along the
//     way, degrades to parsing the /place/ path segment from the link.
//
// The returned draft is never nil and the method never returns an error;
// the worst case is a draft titled "New Place" with only the URL filled in.
func (c *Client) ExtractPlace(ctx context.Context, rawURL string) *Draft {
	placeID := ""

	if u, err := url.Parse(rawURL); err == nil {
		placeID = u.Query().Get("place_id")
	}

	// No explicit id but an encoded data blob: text-search the place
	// name from the path to resolve one. The blob format is an
	// undocumented heuristic, so a miss here is expected and fine.
	if placeID == "" && c.Enabled() && dataBlobRe.MatchString(rawURL) {
		if name := placeNameFromURL(rawURL); name != "" {
			id, err := c.textSearch(ctx, name)
			if err != nil {
				c.logger.Debug("place text search failed, falling back to link parsing",
					"error", err)
			} else {
				placeID = id
			}
		}
	}

	if placeID != "" && c.Enabled() {
		draft, err := c.draftFromDetails(ctx, placeID, rawURL)
		if err != nil {
			c.logger.Debug("place details lookup failed, falling back to link parsing",
				"place_id", placeID,
				"error", err)
		} else {
			return draft
		}
	}

	return draftFromURL(rawURL)
}

// draftFromDetails builds a fully enriched draft from the details endpoint.
func (c *Client) draftFromDetails(ctx context.Context, placeID, rawURL string) (*Draft, error) {
	details, err := c.placeDetails(ctx, placeID)
	if err != nil {
		return nil, err
	}

	if details.Name == "" {
		return nil, fmt.Errorf("details for %s returned no name", placeID)
	}

	draft := &Draft{
		Title:       details.Name,
		URL:         rawURL,
		Description: importedDescription,
		Location:    details.FormattedAddress,
		Rating:      details.Rating,
		PriceLevel:  details.PriceLevel,
		TagNames:    tagNamesFromTypes(details.Types),
	}

	if len(details.Photos) > 0 && details.Photos[0].PhotoReference != "" {
		draft.PreviewImage = c.photoURL(details.Photos[0].PhotoReference)
	}

	return draft, nil
}

// draftFromURL is the lowest-fidelity path: everything is parsed from
// the link itself.
func draftFromURL(rawURL string) *Draft {
	draft := &Draft{
		Title:       "New Place",
		URL:         rawURL,
		Description: importedDescription,
	}

	if name := placeNameFromURL(rawURL); name != "" {
		draft.Title = name
	}

	if m := coordsRe.FindStringSubmatch(rawURL); m != nil {
		draft.Location = m[1] + ", " + m[2]
	}

	return draft
}

// placeNameFromURL pulls the human-readable name out of the /place/
// path segment. Maps encodes spaces as "+" there.
func placeNameFromURL(rawURL string) string {
	m := placeSegmentRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}

	segment := m[1]
	if decoded, err := url.PathUnescape(segment); err == nil {
		segment = decoded
	}

	return strings.TrimSpace(strings.ReplaceAll(segment, "+", " "))
}

// tagNamesFromTypes filters API place types down to displayable tag
// names. Only a small allow-list of categories is interesting; the
// rest (establishment, point_of_interest, etc.) would pollute tags.
func tagNamesFromTypes(types []string) []string {
	var names []string
	for _, t := range types {
		if !tagTypes[t] {
			continue
		}
		names = append(names, util.HumanizeToken(t))
		if len(names) == maxTagTypes {
			break
		}
	}
	return names
}
