package domain

import "fmt"

// UnreachablePairError reports a routing matrix cell the provider could not
// compute. One unreachable pair fails the whole aggregation rather than
// silently coercing the cell to zero, which would corrupt the ranking.
type UnreachablePairError struct {
	PlaceID string
	POIID   string
}

func (e *UnreachablePairError) Error() string {
	return fmt.Sprintf("no route between place %q and point of interest %q", e.PlaceID, e.POIID)
}
