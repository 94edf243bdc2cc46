package domain

// Places API status values
const (
	PlacesStatusOK          = "OK"
	PlacesStatusZeroResults = "ZERO_RESULTS"
)

// PlacesSearchResponse represents the response from the places text-search API
type PlacesSearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Results      []PlaceResult `json:"results"`
}

// PlaceResult represents a single place record
type PlaceResult struct {
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address"`
	Rating           *float64      `json:"rating,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	PlaceID          string        `json:"place_id"`
}

// OpeningHours carries the open-now flag; nil means unknown
type OpeningHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}
