package domain

import "strings"

// Category is the coarse product class the extractor assigns to an item
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryFashion     Category = "fashion"
	CategoryGrocery     Category = "grocery"
	CategoryPharmacy    Category = "pharmacy"
	CategoryHardware    Category = "hardware"
	CategoryGeneral     Category = "general"
)

// Categories lists every valid category in prompt order
var Categories = []Category{
	CategoryElectronics,
	CategoryFashion,
	CategoryGrocery,
	CategoryPharmacy,
	CategoryHardware,
	CategoryGeneral,
}

// ParseCategory maps free text from the model onto the enum.
// Anything unrecognised becomes CategoryGeneral.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryGeneral
}

// Location is a WGS84 coordinate pair
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinates are within range
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// ShoppingRequest is the body of POST /search
type ShoppingRequest struct {
	Text     string    `json:"text"`
	Location *Location `json:"location"`
}

// ExtractedItem is one shopping item identified in the free text
type ExtractedItem struct {
	Query    string   `json:"query"`
	Category Category `json:"category"`
}

// OnlineLink points at an e-commerce or social search page for an item
type OnlineLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// OfflineShop is a physical store near the caller
type OfflineShop struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Rating        string `json:"rating"`
	OpenStatus    string `json:"openStatus"`
	DirectionLink string `json:"directionLink"`
}

// OfflineResolution is the outcome of one item's nearby-store lookup.
// Err is kept for logging and tests; it never reaches the client.
type OfflineResolution struct {
	Shops []OfflineShop
	Err   error
}

// SearchResult is the per-item unit returned to the caller
type SearchResult struct {
	Item     string        `json:"item"`
	Category Category      `json:"category"`
	Online   []OnlineLink  `json:"online"`
	Offline  []OfflineShop `json:"offline"`
}

// SearchResponse is the body of a successful POST /search
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
