package trip

import (
	"github.com/sells-group/freight-recon/internal/lookup"
)

// MissKind names the reference table a lookup missed.
type MissKind string

const (
	MissMaterial  MissKind = "material"
	MissDistance  MissKind = "distance"
	MissRemap     MissKind = "address_remap"
	MissCarrier   MissKind = "carrier_status"
	MissTruckType MissKind = "truck_type"
	MissTariff    MissKind = "tariff"
	MissTripPrice MissKind = "trip_price"
)

// Miss is one unresolved lookup.
type Miss struct {
	Kind      MissKind
	Key       string
	WaybillNo string
}

// Audit lists the lookups that degraded to zero while costing trips. Each
// (kind, key) pair is reported once, at its first occurrence.
func Audit(trips []Trip, tables *lookup.Tables) []Miss {
	var misses []Miss
	seen := make(map[Miss]bool)
	add := func(kind MissKind, key, waybill string) {
		k := Miss{Kind: kind, Key: key}
		if seen[k] {
			return
		}
		seen[k] = true
		misses = append(misses, Miss{Kind: kind, Key: key, WaybillNo: waybill})
	}

	for _, t := range trips {
		truckType := tables.TruckType(t.WaybillNo)
		if _, ok := tables.Carrier(t.WaybillNo); !ok {
			add(MissCarrier, t.WaybillNo, t.WaybillNo)
		} else if truckType == "" {
			add(MissTruckType, t.WaybillNo, t.WaybillNo)
		}

		for _, s := range t.Stops {
			addr := s.Record.ShipToAddress
			if _, ok := tables.Material(s.Record.MaterialNo); !ok {
				add(MissMaterial, s.Record.MaterialNo, t.WaybillNo)
			}
			if !s.HasDistance {
				add(MissDistance, addr, t.WaybillNo)
			}
			if _, ok := tables.Remap(addr); !ok {
				add(MissRemap, addr, t.WaybillNo)
			}
		}

		ward := tables.OldWard(t.Primary().Record.ShipToAddress)
		if _, ok := tables.Tariff(ward); !ok {
			add(MissTariff, ward, t.WaybillNo)
			continue
		}
		if truckType != "" {
			if _, ok := tables.TripPrice(ward, truckType); !ok {
				add(MissTripPrice, ward+"/"+truckType, t.WaybillNo)
			}
		}
	}

	return misses
}
