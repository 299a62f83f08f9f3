package trip

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/freight-recon/internal/cost"
	"github.com/sells-group/freight-recon/internal/lookup"
	"github.com/sells-group/freight-recon/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rec(waybill, material, qty, address string) model.DeliveryRecord {
	return model.DeliveryRecord{
		WaybillNo:         waybill,
		MaterialNo:        material,
		DeliveredQuantity: qty,
		ShipToAddress:     address,
	}
}

func testTables() *lookup.Tables {
	return lookup.New(lookup.Sources{
		Materials: []model.MaterialVolume{
			{MaterialNo: "M1", UnitCBM: dec("2.0"), Category: "Fridge"},
			{MaterialNo: "M2", UnitCBM: dec("0.5"), Category: "TV"},
		},
		Tariffs: []model.TariffEntry{
			{Area: "North", Ward: "W-A2", Code: "P-A2", TripPrice: map[string]decimal.Decimal{
				"5T": dec("1200000"), "8T": dec("1800000"),
			}},
			{Area: "South", Ward: "W-A", Code: "P-A", TripPrice: map[string]decimal.Decimal{
				"5T": dec("800000"),
			}},
		},
		Remaps: map[string]model.AddressRemap{
			"A":  {OldWard: "W-A", OldProvince: "P1", NewWard: "N-A", NewProvince: "NP1"},
			"A2": {OldWard: "W-A2", OldProvince: "P1", NewWard: "N-A2", NewProvince: "NP1"},
			"A3": {OldWard: "W-A", OldProvince: "P1", NewWard: "N-A", NewProvince: "NP1"},
		},
		Distances: map[string]float64{"A": 50, "A2": 120, "A3": 50},
		Carriers: []model.CarrierStatus{
			{WaybillNo: "WB100", TruckType: "5T"},
			{WaybillNo: "WB200", TruckType: "8T"},
			{WaybillNo: "WB300", TruckType: ""},
		},
		Fees: []model.ManualFees{
			{WaybillNo: "WB100", MaterialNo: "M1", Overnight: dec("100000"), Waiting: dec("50000")},
			{WaybillNo: "WB100", MaterialNo: "M2", Transfer: dec("70000")},
		},
	})
}

func testCalc() *cost.Calculator {
	return cost.NewCalculator(cost.DefaultRates())
}

func TestGroup_PreservesFirstSeenOrder(t *testing.T) {
	t.Parallel()
	records := []model.DeliveryRecord{
		rec("WB2", "M1", "1", "A"),
		rec("WB1", "M1", "1", "A"),
		rec("WB2", "M2", "1", "A2"),
		rec("", "M1", "1", "A"),
		rec(" WB1", "M2", "1", "A3"),
	}

	groups := Group(records)
	require.Len(t, groups, 3)
	assert.Equal(t, "WB2", groups[0].WaybillNo)
	assert.Equal(t, "WB1", groups[1].WaybillNo)
	assert.Equal(t, "", groups[2].WaybillNo)

	assert.Equal(t, []string{"M1", "M2"}, []string{groups[0].Records[0].MaterialNo, groups[0].Records[1].MaterialNo})
	assert.Equal(t, "A3", groups[1].Records[1].ShipToAddress)

	total := 0
	for _, g := range groups {
		total += len(g.Records)
	}
	assert.Equal(t, len(records), total, "no record is dropped")
}

func TestGroup_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Group(nil))
}

func TestOrder_DescendingDistance(t *testing.T) {
	t.Parallel()
	g := Group([]model.DeliveryRecord{
		rec("WB100", "M1", "1", "A"),
		rec("WB100", "M2", "1", "A2"),
	})[0]

	tr := Order(g, testTables())
	require.Len(t, tr.Stops, 2)
	assert.Equal(t, "A2", tr.Stops[0].Record.ShipToAddress)
	assert.Equal(t, RolePrimary, tr.Stops[0].Role)
	assert.Equal(t, RoleSecondary, tr.Stops[1].Role)
	assert.Equal(t, "A2", tr.Primary().Record.ShipToAddress)
}

func TestOrder_StableForTiesAndMissing(t *testing.T) {
	t.Parallel()
	g := Group([]model.DeliveryRecord{
		rec("WB1", "first-unknown", "1", "nowhere"),
		rec("WB1", "A", "1", "A"),
		rec("WB1", "A3", "1", "A3"),
		rec("WB1", "second-unknown", "1", "elsewhere"),
		rec("WB1", "A2", "1", "A2"),
	})[0]

	tr := Order(g, testTables())

	var got []string
	for _, s := range tr.Stops {
		got = append(got, s.Record.MaterialNo)
	}
	assert.Equal(t, []string{"A2", "A", "A3", "first-unknown", "second-unknown"}, got)
	assert.False(t, tr.Stops[3].HasDistance)
	assert.InDelta(t, 0, tr.Stops[3].Distance, 0.0001)
}

func TestClassify(t *testing.T) {
	t.Parallel()
	tables := testTables()

	tests := []struct {
		name      string
		addresses []string
		want      bool
	}{
		{"single stop", []string{"A2"}, false},
		{"different ward", []string{"A", "A2"}, true},
		{"same ward different address", []string{"A", "A3"}, false},
		{"both unknown", []string{"x", "y"}, false},
		{"unknown against known", []string{"A", "x"}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var records []model.DeliveryRecord
			for _, a := range tt.addresses {
				records = append(records, rec("WB", "M1", "1", a))
			}
			tr := Order(Group(records)[0], tables)
			assert.Equal(t, tt.want, Classify(tr, tables))
		})
	}
}

func TestCost_AddingPointExample(t *testing.T) {
	t.Parallel()
	tables := testTables()
	trips := Build([]model.DeliveryRecord{
		rec("WB100", "M1", "3", "A"),
		rec("WB100", "M2", "2", "A2"),
	}, tables)
	require.Len(t, trips, 1)
	tr := trips[0]
	require.True(t, tr.MultiStop)

	tc := Cost(tr, tables, testCalc())
	require.Len(t, tc.Stops, 2)

	primary, secondary := tc.Stops[0], tc.Stops[1]

	// A2 is farther and becomes primary: 5T price for W-A2, M2 loading, M2 fees.
	assert.True(t, dec("1200000").Equal(primary.TripPrice))
	assert.True(t, dec("1").Equal(primary.Volume))
	assert.True(t, dec("25000").Equal(primary.Loading))
	assert.True(t, primary.AddingPoint.IsZero())
	assert.True(t, dec("70000").Equal(primary.Fees.Transfer))
	assert.True(t, dec("1295000").Equal(primary.Total), "got %s", primary.Total)

	// A is the adding point: surcharge and loading only.
	assert.True(t, secondary.TripPrice.IsZero())
	assert.True(t, dec("90000").Equal(secondary.AddingPoint))
	assert.True(t, dec("6").Equal(secondary.Volume))
	assert.True(t, dec("150000").Equal(secondary.Loading))
	assert.True(t, secondary.Fees.Sum().IsZero(), "manual fees only on the primary stop")
	assert.True(t, dec("240000").Equal(secondary.Total))

	assert.True(t, dec("1535000").Equal(tc.Total))
}

func TestCost_TripTotalIsSumOfStops(t *testing.T) {
	t.Parallel()
	tables := testTables()
	trips := Build([]model.DeliveryRecord{
		rec("WB100", "M1", "3", "A"),
		rec("WB100", "M2", "7", "A2"),
		rec("WB100", "M1", "1.5", "A3"),
		rec("WB200", "M2", "4", "A"),
		rec("WB300", "M9", "4", "A"),
		rec("WB400", "M1", "abc", "nowhere"),
	}, tables)

	for _, tr := range trips {
		tc := Cost(tr, tables, testCalc())
		sum := decimal.Zero
		for i, b := range tc.Stops {
			sum = sum.Add(b.Total)
			if i > 0 {
				assert.True(t, b.TripPrice.IsZero(), "trip %s stop %d", tr.WaybillNo, i)
				assert.True(t, b.Fees.Sum().IsZero(), "trip %s stop %d", tr.WaybillNo, i)
			}
		}
		assert.True(t, sum.Equal(tc.Total), "trip %s: %s != %s", tr.WaybillNo, sum, tc.Total)
	}
}

func TestCost_SingleStopHasNoAddingPoint(t *testing.T) {
	t.Parallel()
	tables := testTables()
	trips := Build([]model.DeliveryRecord{rec("WB200", "M1", "3", "A")}, tables)
	require.Len(t, trips, 1)
	assert.False(t, trips[0].MultiStop)

	tc := Cost(trips[0], tables, testCalc())
	assert.True(t, tc.Stops[0].AddingPoint.IsZero())
	assert.True(t, dec("150000").Equal(tc.Stops[0].Loading))
	// W-A has no 8T price.
	assert.True(t, tc.Stops[0].TripPrice.IsZero())
}

func TestCost_MissingMaterialIsZeroVolume(t *testing.T) {
	t.Parallel()
	tables := testTables()
	trips := Build([]model.DeliveryRecord{rec("WB100", "UNKNOWN", "10", "A")}, tables)

	tc := Cost(trips[0], tables, testCalc())
	assert.True(t, tc.Stops[0].Volume.IsZero())
	assert.True(t, tc.Stops[0].Loading.IsZero())
	assert.True(t, dec("800000").Equal(tc.Stops[0].TripPrice))
}

func TestCost_MissingCarrierIsZeroPrice(t *testing.T) {
	t.Parallel()
	tables := testTables()
	trips := Build([]model.DeliveryRecord{rec("WB-NONE", "M1", "1", "A2")}, tables)

	tc := Cost(trips[0], tables, testCalc())
	assert.True(t, tc.Stops[0].TripPrice.IsZero())
	assert.True(t, dec("50000").Equal(tc.Total))
}

func TestCost_ManualFeesOnPrimary(t *testing.T) {
	t.Parallel()
	tables := testTables()
	trips := Build([]model.DeliveryRecord{rec("WB100", "M1", "1", "A")}, tables)

	tc := Cost(trips[0], tables, testCalc())
	b := tc.Stops[0]
	assert.True(t, dec("150000").Equal(b.Fees.Sum()))
	// 800000 price + 50000 loading + 150000 fees
	assert.True(t, dec("1000000").Equal(b.Total))
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()
	tables := testTables()
	records := []model.DeliveryRecord{
		rec("WB2", "M1", "1", "A"),
		rec("WB1", "M2", "2", "A2"),
		rec("WB2", "M2", "3", "A2"),
		rec("WB1", "M1", "4", "x"),
		rec("WB2", "M1", "5", "A3"),
	}

	first := Build(records, tables)
	second := Build(records, tables)
	assert.Equal(t, first, second)
	assert.Equal(t, Cost(first[0], tables, testCalc()), Cost(second[0], tables, testCalc()))
}

func TestRoleString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "primary", RolePrimary.String())
	assert.Equal(t, "secondary", RoleSecondary.String())
}

func TestAudit(t *testing.T) {
	t.Parallel()
	tables := testTables()
	trips := Build([]model.DeliveryRecord{
		rec("WB100", "M1", "1", "A"),
		rec("WB200", "M9", "1", "A"),
		rec("WB300", "M9", "1", "nowhere"),
		rec("WB-NONE", "M1", "1", "A2"),
	}, tables)

	misses := Audit(trips, tables)

	has := func(kind MissKind, key string) bool {
		for _, m := range misses {
			if m.Kind == kind && m.Key == key {
				return true
			}
		}
		return false
	}

	assert.True(t, has(MissMaterial, "M9"))
	assert.True(t, has(MissTripPrice, "W-A/8T"))
	assert.True(t, has(MissTruckType, "WB300"))
	assert.True(t, has(MissDistance, "nowhere"))
	assert.True(t, has(MissRemap, "nowhere"))
	assert.True(t, has(MissTariff, ""))
	assert.True(t, has(MissCarrier, "WB-NONE"))
	assert.False(t, has(MissCarrier, "WB100"))

	count := 0
	for _, m := range misses {
		if m.Kind == MissMaterial && m.Key == "M9" {
			count++
		}
	}
	assert.Equal(t, 1, count, "misses are reported once")
}
