package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the point lies on the globe.
func (p GeoPoint) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Lon)
	}
	return nil
}

// A named, addressable position on the map. Owned by whichever entity
// embeds it; it has no lifecycle of its own.
type Location struct {
	Coordinates GeoPoint `json:"coordinates"`
	Address     string   `json:"address"`
	PlaceName   string   `json:"place_name,omitempty"`
}
