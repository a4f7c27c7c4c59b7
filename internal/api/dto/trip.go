package dto

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Location struct {
	Coordinates GeoPoint `json:"coordinates"`
	Address     string   `json:"address"`
	PlaceName   string   `json:"place_name,omitempty"`
}

type PointOfInterest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Note     string   `json:"note,omitempty"`
	URL      string   `json:"url,omitempty"`
}

type Leg struct {
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
}

type PlaceToStay struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Note     string   `json:"note,omitempty"`
	URL      string   `json:"url,omitempty"`

	AverageDistance    float64        `json:"average_distance"`
	CumulativeDistance float64        `json:"cumulative_distance"`
	AverageTime        float64        `json:"average_time"`
	CumulativeTime     float64        `json:"cumulative_time"`
	DistancesToPOIs    map[string]Leg `json:"distances_to_pois,omitempty"`
}

type TripResponse struct {
	TripID           string            `json:"trip_id"`
	PointsOfInterest []PointOfInterest `json:"points_of_interest"`
	PlacesToStay     []PlaceToStay     `json:"places_to_stay"`
	DistanceMode     string            `json:"distance_mode"`
	TransportProfile string            `json:"transport_profile"`
	MapCenter        *GeoPoint         `json:"map_center,omitempty"`
	MapZoom          *float64          `json:"map_zoom,omitempty"`
}

type TripSummaryResponse struct {
	TripID     string `json:"trip_id"`
	POICount   int    `json:"poi_count"`
	PlaceCount int    `json:"place_count"`
}

type ListTripsResponse struct {
	Trips []TripSummaryResponse `json:"trips"`
}

// PutTripRequest replaces a whole trip snapshot. Edits to individual points
// of interest or places arrive as a full-state replace, mirroring how the
// snapshot is shared.
type PutTripRequest struct {
	PointsOfInterest []PointOfInterest `json:"points_of_interest"`
	PlacesToStay     []PlaceToStay     `json:"places_to_stay"`
	DistanceMode     string            `json:"distance_mode"`
	TransportProfile string            `json:"transport_profile"`
	MapCenter        *GeoPoint         `json:"map_center,omitempty"`
	MapZoom          *float64          `json:"map_zoom,omitempty"`
}

// AggregateResponse returns the refreshed trip with places ranked by the
// trip's distance mode.
type AggregateResponse struct {
	Trip   TripResponse  `json:"trip"`
	Ranked []PlaceToStay `json:"ranked"`
}
