package domain

// Travel mode used for distance and duration calculation.
type TransportProfile string

const (
	ProfileWalking TransportProfile = "walking"
	ProfileDriving TransportProfile = "driving-with-traffic"
	ProfileCycling TransportProfile = "cycling"
)

// Valid reports whether the profile is one of the supported travel modes.
func (p TransportProfile) Valid() bool {
	switch p {
	case ProfileWalking, ProfileDriving, ProfileCycling:
		return true
	}
	return false
}

// Display/sort criterion for ranking places to stay. It selects which
// derived field orders the list and never affects computed values.
type DistanceMode string

const (
	ModeAverage    DistanceMode = "average"
	ModeCumulative DistanceMode = "cumulative"
)

func (m DistanceMode) Valid() bool {
	return m == ModeAverage || m == ModeCumulative
}

// A point of interest the user wants to be near. Identity is the ID;
// list order is insertion order and carries no meaning.
type PointOfInterest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Note     string   `json:"note,omitempty"`
	URL      string   `json:"url,omitempty"`
}

// Travel distance and time from one place to stay to one point of interest.
type Leg struct {
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// A candidate lodging location being ranked against the points of interest.
//
// The distance fields are a cache, not source of truth: they are fully
// replaced by each successful aggregation and go stale whenever the point
// of interest list, the place list, or the transport profile changes.
// A place never yet aggregated carries zero values throughout.
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

// Trip is the shareable planning snapshot: points of interest, candidate
// places to stay (with whatever distance data was last computed, stale or
// not), and the display settings. It round-trips through storage as-is.
type Trip struct {
	TripID           string            `json:"trip_id"`
	PointsOfInterest []PointOfInterest `json:"points_of_interest"`
	PlacesToStay     []PlaceToStay     `json:"places_to_stay"`
	DistanceMode     DistanceMode      `json:"distance_mode"`
	TransportProfile TransportProfile  `json:"transport_profile"`
	MapCenter        *GeoPoint         `json:"map_center,omitempty"`
	MapZoom          *float64          `json:"map_zoom,omitempty"`
}
