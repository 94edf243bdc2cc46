package places

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/where2buy/backend/internal/domain"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }

func TestMapToOfflineShop(t *testing.T) {
	tests := []struct {
		name       string
		place      domain.PlaceResult
		wantRating string
		wantStatus string
	}{
		{
			name: "rated and open",
			place: domain.PlaceResult{
				Name: "Imtiaz", FormattedAddress: "DHA Phase 4", PlaceID: "p1",
				Rating:       ptrFloat(4.5),
				OpeningHours: &domain.OpeningHours{OpenNow: ptrBool(true)},
			},
			wantRating: "4.5",
			wantStatus: "Open Now",
		},
		{
			name: "whole rating",
			place: domain.PlaceResult{
				Name: "Al-Fatah", PlaceID: "p2", Rating: ptrFloat(4),
			},
			wantRating: "4",
			wantStatus: "Closed/Unknown",
		},
		{
			name: "closed",
			place: domain.PlaceResult{
				Name: "Metro", PlaceID: "p3",
				OpeningHours: &domain.OpeningHours{OpenNow: ptrBool(false)},
			},
			wantRating: "N/A",
			wantStatus: "Closed/Unknown",
		},
		{
			name: "opening hours without flag",
			place: domain.PlaceResult{
				Name: "Carrefour", PlaceID: "p4",
				OpeningHours: &domain.OpeningHours{},
			},
			wantRating: "N/A",
			wantStatus: "Closed/Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := MapToOfflineShop(tt.place)

			assert.Equal(t, tt.place.Name, shop.Name)
			assert.Equal(t, tt.place.FormattedAddress, shop.Address)
			assert.Equal(t, tt.wantRating, shop.Rating)
			assert.Equal(t, tt.wantStatus, shop.OpenStatus)
			assert.Contains(t, shop.DirectionLink, "destination_place_id="+tt.place.PlaceID)
		})
	}
}

func TestMapToOfflineShops_Limit(t *testing.T) {
	places := []domain.PlaceResult{
		{Name: "a", PlaceID: "1"},
		{Name: "b", PlaceID: "2"},
		{Name: "c", PlaceID: "3"},
		{Name: "d", PlaceID: "4"},
		{Name: "e", PlaceID: "5"},
	}

	shops := MapToOfflineShops(places, 3)
	require.Len(t, shops, 3)
	assert.Equal(t, "a", shops[0].Name)
	assert.Equal(t, "c", shops[2].Name)

	assert.Len(t, MapToOfflineShops(places[:2], 3), 2)
	assert.NotNil(t, MapToOfflineShops(nil, 3))
	assert.Empty(t, MapToOfflineShops(nil, 3))
}

func TestDirectionsLink(t *testing.T) {
	link := DirectionsLink("Hafeez Centre & Co", "ChIJ123")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "www.google.com", u.Host)
	assert.Equal(t, "/maps/dir/", u.Path)
	assert.Equal(t, "1", u.Query().Get("api"))
	assert.Equal(t, "Hafeez Centre & Co", u.Query().Get("destination"))
	assert.Equal(t, "ChIJ123", u.Query().Get("destination_place_id"))
}
