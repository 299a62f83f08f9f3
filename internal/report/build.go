package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sells-group/freight-recon/internal/cost"
	"github.com/sells-group/freight-recon/internal/lookup"
	"github.com/sells-group/freight-recon/internal/model"
	"github.com/sells-group/freight-recon/internal/trip"
)

// Row is one output line. Cells hold int, float64, string or nil; nil is a
// blank cell.
type Row []any

// Build renders every trip's stops as rows, trips in order and stops in
// canonical order, and returns the sum of the trip totals it rendered. The
// row number counts trips, not stops.
func Build(trips []trip.Trip, tables *lookup.Tables, calc *cost.Calculator) ([]Row, decimal.Decimal) {
	var rows []Row
	total := decimal.Zero
	no := 0
	for _, t := range trips {
		no++
		tc := trip.Cost(t, tables, calc)
		total = total.Add(tc.Total)
		rows = appendTrip(rows, no, t, tc, tables, calc)
	}
	return rows, total
}

func appendTrip(rows []Row, no int, t trip.Trip, tc trip.TripCost, tables *lookup.Tables, calc *cost.Calculator) []Row {
	carrier, _ := tables.Carrier(t.WaybillNo)

	for i, s := range t.Stops {
		b := tc.Stops[i]
		r := s.Record
		remap, _ := tables.Remap(r.ShipToAddress)
		tariff, _ := tables.Tariff(remap.OldWard)
		material, _ := tables.Material(r.MaterialNo)
		primary := s.Role == trip.RolePrimary

		row := make(Row, columnCount)
		row[ColNo] = no
		row[ColShippedDate] = firstNonEmpty(r.PickupDate, carrier.EstimatePickUpTime)
		row[ColDeliveryNo] = r.DNNo
		row[ColPONo] = r.PONo
		row[ColWaybillNo] = t.WaybillNo
		row[ColWarehouse] = r.StorageLocation
		row[ColVehicleNo] = r.VehicleNo
		row[ColTonnage] = carrier.TruckType
		row[ColCategory] = material.Category
		row[ColMaterial] = r.MaterialNo
		row[ColModel] = r.MaterialDesc
		row[ColQuantity] = quantity(r)
		row[ColUnitCBM] = b.UnitCBM.Round(2).InexactFloat64()
		row[ColTotalCBM] = b.Volume.Round(2).InexactFloat64()
		row[ColSoldToCode] = r.SoldToCode
		row[ColSoldToName] = r.SoldToName
		row[ColShipToName] = r.ShipToName
		row[ColOldWard] = remap.OldWard
		row[ColOldProvince] = remap.OldProvince
		row[ColNewAddress] = r.ShipToAddress
		row[ColNewWard] = remap.NewWard
		row[ColNewProvince] = remap.NewProvince
		row[ColRouteCode] = tariff.Area
		row[ColChargingPoint] = chargingPoint(primary, t.MultiStop, remap.OldWard)
		row[ColUnitLoadingPrice] = money(calc.LoadingPerCBM())
		row[ColAddingPoint] = blankZero(b.AddingPoint)
		row[ColLoadingFee] = blankZero(b.Loading)
		row[ColTransferFee] = blankZero(b.Fees.Transfer)
		row[ColOvernightFee] = blankZero(b.Fees.Overnight)
		row[ColReturnFee] = blankZero(b.Fees.Return)
		row[ColAbnormalFee] = blankZero(b.Fees.OffRoute)
		row[ColWaitingFee] = blankZero(b.Fees.Waiting)
		row[ColOthersFee] = blankZero(b.Fees.Others)
		row[ColTotal] = money(b.Total)

		if primary {
			if s.HasDistance {
				row[ColLongestDistance] = s.Distance
			}
			row[ColPointCode] = tariff.Code
			row[ColUnitPrice] = blankZero(b.TripPrice)
			row[ColTripTotal] = money(tc.Total)
		}

		rows = append(rows, row)
	}

	return rows
}

// chargingPoint is the ward the trip is charged from: the primary stop's
// ward, plus every adding point's own ward on multi-stop trips.
func chargingPoint(primary, multiStop bool, oldWard string) string {
	if primary || multiStop {
		return oldWard
	}
	return ""
}

// quantity is numeric when the export's text parses, else the raw text.
func quantity(r model.DeliveryRecord) any {
	if q, ok := r.ParseQuantity(); ok {
		return q.InexactFloat64()
	}
	if strings.TrimSpace(r.DeliveredQuantity) == "" {
		return nil
	}
	return r.DeliveredQuantity
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// blankZero renders a fee that does not apply as an empty cell.
func blankZero(d decimal.Decimal) any {
	if d.IsZero() {
		return nil
	}
	return money(d)
}
