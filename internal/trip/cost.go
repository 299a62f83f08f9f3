package trip

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/freight-recon/internal/cost"
	"github.com/sells-group/freight-recon/internal/lookup"
	"github.com/sells-group/freight-recon/internal/model"
)

// Breakdown is the cost of one stop.
type Breakdown struct {
	Role        Role
	UnitCBM     decimal.Decimal
	Volume      decimal.Decimal
	TripPrice   decimal.Decimal
	Loading     decimal.Decimal
	AddingPoint decimal.Decimal
	Fees        model.ManualFees
	Total       decimal.Decimal
}

// TripCost is the per-stop breakdowns of a trip, in stop order, and their sum.
type TripCost struct {
	Stops []Breakdown
	Total decimal.Decimal
}

// Cost computes every stop's breakdown. The tariff price and manual fees are
// attributed to the primary stop only; the adding-point surcharge to
// secondary stops of multi-stop trips only. Lookup misses contribute zero.
func Cost(t Trip, tables *lookup.Tables, calc *cost.Calculator) TripCost {
	tc := TripCost{Stops: make([]Breakdown, len(t.Stops))}
	truckType := tables.TruckType(t.WaybillNo)

	for i, s := range t.Stops {
		tc.Stops[i] = stopCost(t, s, truckType, tables, calc)
	}

	tc.Total = decimal.Zero
	for _, b := range tc.Stops {
		tc.Total = tc.Total.Add(b.sum())
	}

	return tc
}

func stopCost(t Trip, s Stop, truckType string, tables *lookup.Tables, calc *cost.Calculator) Breakdown {
	b := Breakdown{
		Role:        s.Role,
		UnitCBM:     tables.UnitCBM(s.Record.MaterialNo),
		TripPrice:   decimal.Zero,
		AddingPoint: calc.AddingPoint(t.MultiStop && s.Role == RoleSecondary),
	}
	b.Volume = b.UnitCBM.Mul(s.Record.Quantity())
	b.Loading = calc.Loading(b.Volume)

	if s.Role == RolePrimary {
		b.TripPrice, _ = tables.TripPrice(tables.OldWard(s.Record.ShipToAddress), truckType)
		if f, ok := tables.Fees(t.WaybillNo, s.Record.MaterialNo); ok {
			b.Fees = f
		}
	}

	b.Total = b.sum()
	return b
}

func (b Breakdown) sum() decimal.Decimal {
	return b.TripPrice.Add(b.Loading).Add(b.AddingPoint).Add(b.Fees.Sum())
}
