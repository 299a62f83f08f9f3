package trip

import "sort"

// DistanceSource resolves the travel distance of an address.
type DistanceSource interface {
	Distance(address string) (float64, bool)
}

// Order sorts a group's records by descending distance. Missing distances
// count as zero. The sort is stable: records at equal distance keep their
// input order, which decides the primary stop on ties.
func Order(g WaybillGroup, distances DistanceSource) Trip {
	stops := make([]Stop, len(g.Records))
	for i, r := range g.Records {
		d, ok := distances.Distance(r.ShipToAddress)
		stops[i] = Stop{Record: r, Distance: d, HasDistance: ok, Role: RoleSecondary}
	}

	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].Distance > stops[j].Distance
	})

	if len(stops) > 0 {
		stops[0].Role = RolePrimary
	}

	return Trip{WaybillNo: g.WaybillNo, Stops: stops}
}
