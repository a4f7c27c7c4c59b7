package handlers

import (
	"fmt"
	"strings"

	"github.com/jamesvickers19/loco/internal/api/dto"
	"github.com/jamesvickers19/loco/internal/domain"
)

func toGeoPoint(p domain.GeoPoint) dto.GeoPoint { return dto.GeoPoint{Lat: p.Lat, Lon: p.Lon} }

func toLocation(l domain.Location) dto.Location {
	return dto.Location{
		Coordinates: toGeoPoint(l.Coordinates),
		Address:     l.Address,
		PlaceName:   l.PlaceName,
	}
}

func toPlaceToStay(p domain.PlaceToStay) dto.PlaceToStay {
	out := dto.PlaceToStay{
		ID:                 p.ID,
		Name:               p.Name,
		Location:           toLocation(p.Location),
		Note:               p.Note,
		URL:                p.URL,
		AverageDistance:    p.AverageDistance,
		CumulativeDistance: p.CumulativeDistance,
		AverageTime:        p.AverageTime,
		CumulativeTime:     p.CumulativeTime,
	}
	if len(p.DistancesToPOIs) > 0 {
		out.DistancesToPOIs = make(map[string]dto.Leg, len(p.DistancesToPOIs))
		for id, leg := range p.DistancesToPOIs {
			out.DistancesToPOIs[id] = dto.Leg{
				DistanceMiles:   leg.DistanceMiles,
				DurationMinutes: leg.DurationMinutes,
			}
		}
	}
	return out
}

func toPlacesToStay(places []domain.PlaceToStay) []dto.PlaceToStay {
	out := make([]dto.PlaceToStay, 0, len(places))
	for _, p := range places {
		out = append(out, toPlaceToStay(p))
	}
	return out
}

func toTripResponse(t *domain.Trip) dto.TripResponse {
	res := dto.TripResponse{
		TripID:           t.TripID,
		PointsOfInterest: make([]dto.PointOfInterest, 0, len(t.PointsOfInterest)),
		PlacesToStay:     toPlacesToStay(t.PlacesToStay),
		DistanceMode:     string(t.DistanceMode),
		TransportProfile: string(t.TransportProfile),
		MapZoom:          t.MapZoom,
	}
	for _, poi := range t.PointsOfInterest {
		res.PointsOfInterest = append(res.PointsOfInterest, dto.PointOfInterest{
			ID:       poi.ID,
			Name:     poi.Name,
			Location: toLocation(poi.Location),
			Note:     poi.Note,
			URL:      poi.URL,
		})
	}
	if t.MapCenter != nil {
		c := toGeoPoint(*t.MapCenter)
		res.MapCenter = &c
	}
	return res
}

func fromLocation(l dto.Location, what string) (domain.Location, error) {
	coords := domain.GeoPoint{Lat: l.Coordinates.Lat, Lon: l.Coordinates.Lon}
	if err := coords.Validate(); err != nil {
		return domain.Location{}, fmt.Errorf("%s: %w", what, err)
	}
	return domain.Location{
		Coordinates: coords,
		Address:     l.Address,
		PlaceName:   l.PlaceName,
	}, nil
}

// fromPutRequest validates a snapshot replace and maps it onto the domain
// trip. Missing mode and profile fall back to the defaults the UI starts
// with.
func fromPutRequest(tripID string, req dto.PutTripRequest) (*domain.Trip, error) {
	mode := domain.DistanceMode(req.DistanceMode)
	if req.DistanceMode == "" {
		mode = domain.ModeAverage
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown distance_mode %q", req.DistanceMode)
	}

	profile := domain.TransportProfile(req.TransportProfile)
	if req.TransportProfile == "" {
		profile = domain.ProfileWalking
	}
	if !profile.Valid() {
		return nil, fmt.Errorf("unknown transport_profile %q", req.TransportProfile)
	}

	trip := &domain.Trip{
		TripID:           tripID,
		PointsOfInterest: make([]domain.PointOfInterest, 0, len(req.PointsOfInterest)),
		PlacesToStay:     make([]domain.PlaceToStay, 0, len(req.PlacesToStay)),
		DistanceMode:     mode,
		TransportProfile: profile,
		MapZoom:          req.MapZoom,
	}

	seen := make(map[string]struct{}, len(req.PointsOfInterest)+len(req.PlacesToStay))
	addID := func(id, what string) error {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%s: id must be non-empty", what)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%s: duplicate id %q", what, id)
		}
		seen[id] = struct{}{}
		return nil
	}

	for i, poi := range req.PointsOfInterest {
		what := fmt.Sprintf("points_of_interest[%d]", i)
		if err := addID(poi.ID, what); err != nil {
			return nil, err
		}
		loc, err := fromLocation(poi.Location, what)
		if err != nil {
			return nil, err
		}
		trip.PointsOfInterest = append(trip.PointsOfInterest, domain.PointOfInterest{
			ID:       poi.ID,
			Name:     poi.Name,
			Location: loc,
			Note:     poi.Note,
			URL:      poi.URL,
		})
	}

	for i, place := range req.PlacesToStay {
		what := fmt.Sprintf("places_to_stay[%d]", i)
		if err := addID(place.ID, what); err != nil {
			return nil, err
		}
		loc, err := fromLocation(place.Location, what)
		if err != nil {
			return nil, err
		}

		p := domain.PlaceToStay{
			ID:                 place.ID,
			Name:               place.Name,
			Location:           loc,
			Note:               place.Note,
			URL:                place.URL,
			AverageDistance:    place.AverageDistance,
			CumulativeDistance: place.CumulativeDistance,
			AverageTime:        place.AverageTime,
			CumulativeTime:     place.CumulativeTime,
		}
		// Stale aggregates are accepted as-is; the snapshot must round-trip
		// losslessly whether or not a recompute happened since.
		if len(place.DistancesToPOIs) > 0 {
			p.DistancesToPOIs = make(map[string]domain.Leg, len(place.DistancesToPOIs))
			for id, leg := range place.DistancesToPOIs {
				p.DistancesToPOIs[id] = domain.Leg{
					DistanceMiles:   leg.DistanceMiles,
					DurationMinutes: leg.DurationMinutes,
				}
			}
		}
		trip.PlacesToStay = append(trip.PlacesToStay, p)
	}

	if req.MapCenter != nil {
		center := domain.GeoPoint{Lat: req.MapCenter.Lat, Lon: req.MapCenter.Lon}
		if err := center.Validate(); err != nil {
			return nil, fmt.Errorf("map_center: %w", err)
		}
		trip.MapCenter = &center
	}

	return trip, nil
}
