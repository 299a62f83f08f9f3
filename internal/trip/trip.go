// Package trip groups delivery records into waybill trips, orders their
// stops, classifies the route and computes the cost breakdown of each stop.
//
// Everything here is a pure function of the records and the lookup tables:
// nothing is mutated and no I/O happens, so the same input always yields the
// same trips in the same order.
package trip

import (
	"github.com/sells-group/freight-recon/internal/lookup"
	"github.com/sells-group/freight-recon/internal/model"
)

// Role is a stop's part in its trip's cost attribution.
type Role int

const (
	// RolePrimary is the farthest stop. It carries the tariff price, the
	// manual fees and the trip total.
	RolePrimary Role = iota
	// RoleSecondary is any other stop on the trip.
	RoleSecondary
)

func (r Role) String() string {
	if r == RolePrimary {
		return "primary"
	}
	return "secondary"
}

// Stop is one delivery record placed in its trip.
type Stop struct {
	Record      model.DeliveryRecord
	Distance    float64
	HasDistance bool
	Role        Role
}

// Trip is the canonically ordered stops of one waybill.
type Trip struct {
	WaybillNo string
	Stops     []Stop
	MultiStop bool
}

// Primary returns the stop carrying RolePrimary.
func (t Trip) Primary() Stop {
	for _, s := range t.Stops {
		if s.Role == RolePrimary {
			return s
		}
	}
	return Stop{}
}

// Build groups records into trips, orders each trip's stops and classifies
// the route.
func Build(records []model.DeliveryRecord, tables *lookup.Tables) []Trip {
	groups := Group(records)
	trips := make([]Trip, 0, len(groups))
	for _, g := range groups {
		t := Order(g, tables)
		t.MultiStop = Classify(t, tables)
		trips = append(trips, t)
	}
	return trips
}
