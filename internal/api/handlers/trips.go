package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/jamesvickers19/loco/internal/api/dto"
	"github.com/jamesvickers19/loco/internal/domain"
	"github.com/jamesvickers19/loco/internal/ports"
	"github.com/jamesvickers19/loco/internal/services"
)

// TripHandler exposes trip snapshot CRUD plus the distance recompute
// operation.
type TripHandler struct {
	Repo     ports.TripRepository
	Provider ports.RoutingMatrixProvider
}

// newTripID generates a short shareable trip token.
func newTripID() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("new trip id: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{
		Trips: make([]dto.TripSummaryResponse, 0, len(trips)),
	}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripSummaryResponse{
			TripID:     t.TripID,
			POICount:   len(t.PointsOfInterest),
			PlaceCount: len(t.PlacesToStay),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := newTripID()
	if err != nil {
		log.Printf("create trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	trip := &domain.Trip{
		TripID:           id,
		PointsOfInterest: []domain.PointOfInterest{},
		PlacesToStay:     []domain.PlaceToStay{},
		DistanceMode:     domain.ModeAverage,
		TransportProfile: domain.ProfileWalking,
	}

	if err := h.Repo.PutTrip(r.Context(), trip); err != nil {
		log.Printf("create trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, toTripResponse(trip))
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")

	trip, err := h.Repo.GetTrip(r.Context(), tripID)
	if errors.Is(err, ports.ErrTripNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toTripResponse(trip))
}

// Put replaces the whole trip snapshot. Additions, removals, and edits of
// points of interest and places all arrive through this full-state replace;
// previously computed distance aggregates are persisted as sent, stale or
// not, until the next recompute.
func (h *TripHandler) Put(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")

	var req dto.PutTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	// Only known trips can be replaced; ids are minted by Create.
	if _, err := h.Repo.GetTrip(r.Context(), tripID); err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(w, r, http.StatusNotFound, "trip not found")
			return
		}
		log.Printf("put trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	trip, err := fromPutRequest(tripID, req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.PutTrip(r.Context(), trip); err != nil {
		log.Printf("put trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toTripResponse(trip))
}

// Aggregate recomputes travel distances for the stored trip with its
// current transport profile and returns the places ranked by the trip's
// distance mode. On provider failure the stored aggregates stay untouched
// and the service remains available.
func (h *TripHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")

	trip, err := services.RecomputeTrip(r.Context(), tripID, h.Repo, h.Provider)
	if err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(w, r, http.StatusNotFound, "trip not found")
			return
		}

		var unreachable *domain.UnreachablePairError
		if errors.As(err, &unreachable) {
			writeError(w, r, http.StatusUnprocessableEntity, unreachable.Error())
			return
		}

		log.Printf("aggregate trip failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "distance aggregation failed")
		return
	}

	res := dto.AggregateResponse{
		Trip:   toTripResponse(trip),
		Ranked: toPlacesToStay(services.Rank(trip.PlacesToStay, trip.DistanceMode)),
	}

	writeJSON(w, r, http.StatusOK, res)
}
