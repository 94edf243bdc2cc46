package places

import (
	"net/url"
	"strconv"

	"github.com/where2buy/backend/internal/domain"
)

const (
	ratingUnavailable = "N/A"
	statusOpenNow     = "Open Now"
	statusUnknown     = "Closed/Unknown"

	directionsBaseURL = "https://www.google.com/maps/dir/"
)

// MapToOfflineShop converts a places record into our domain OfflineShop
func MapToOfflineShop(place domain.PlaceResult) domain.OfflineShop {
	return domain.OfflineShop{
		Name:          place.Name,
		Address:       place.FormattedAddress,
		Rating:        formatRating(place.Rating),
		OpenStatus:    openStatus(place.OpeningHours),
		DirectionLink: DirectionsLink(place.Name, place.PlaceID),
	}
}

// MapToOfflineShops maps at most limit places, preserving upstream order
func MapToOfflineShops(places []domain.PlaceResult, limit int) []domain.OfflineShop {
	if limit < len(places) {
		places = places[:limit]
	}
	shops := make([]domain.OfflineShop, 0, len(places))
	for _, p := range places {
		shops = append(shops, MapToOfflineShop(p))
	}
	return shops
}

// DirectionsLink builds a Google Maps directions deep-link for a place
func DirectionsLink(name, placeID string) string {
	params := url.Values{}
	params.Add("api", "1")
	params.Add("destination", name)
	params.Add("destination_place_id", placeID)
	return directionsBaseURL + "?" + params.Encode()
}

func formatRating(rating *float64) string {
	if rating == nil {
		return ratingUnavailable
	}
	return strconv.FormatFloat(*rating, 'f', -1, 64)
}

func openStatus(hours *domain.OpeningHours) string {
	if hours != nil && hours.OpenNow != nil && *hours.OpenNow {
		return statusOpenNow
	}
	return statusUnknown
}
