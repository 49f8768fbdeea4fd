package places

// Draft is a pre-filled item draft produced from a Google Maps link.
// Every field is best-effort; only Title and Description are guaranteed
// to be non-empty.
type Draft struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Description  string   `json:"description"`
	Location     string   `json:"location,omitempty"`
	PreviewImage string   `json:"preview_image,omitempty"`
	TagNames     []string `json:"tag_names,omitempty"`
	Rating       float64  `json:"rating,omitempty"`
	PriceLevel   int      `json:"price_level,omitempty"`
}

// tagTypes is the allow-list of place categories that become tags.
// Anything outside this set (street_address, political, etc.) is noise.
var tagTypes = map[string]bool{
	"restaurant":         true,
	"food":               true,
	"cafe":               true,
	"bar":                true,
	"tourist_attraction": true,
	"park":               true,
	"museum":             true,
}

// maxTagTypes caps how many category tags a single import produces.
const maxTagTypes = 3

// Raw API response types (internal)

type textSearchResponse struct {
	Status  string            `json:"status"`
	Results []textSearchEntry `json:"results"`
}

type textSearchEntry struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

type detailsResponse struct {
	Status string     `json:"status"`
	Result rawDetails `json:"result"`
}

type rawDetails struct {
	PlaceID          string     `json:"place_id"`
	Name             string     `json:"name"`
	FormattedAddress string     `json:"formatted_address"`
	Rating           float64    `json:"rating"`
	PriceLevel       int        `json:"price_level"`
	Types            []string   `json:"types"`
	Photos           []rawPhoto `json:"photos"`
}

type rawPhoto struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}
