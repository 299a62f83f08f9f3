// Package lookup holds the reference tables used by the trip cost engine.
// Tables are built once per run and are read-only afterwards; every accessor
// degrades to a zero value on a miss.
package lookup

import (
	"maps"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/freight-recon/internal/model"
)

// Sources is the raw reference data a Tables is built from.
type Sources struct {
	Materials []model.MaterialVolume
	Tariffs   []model.TariffEntry
	Remaps    map[string]model.AddressRemap
	Distances map[string]float64
	Carriers  []model.CarrierStatus
	Fees      []model.ManualFees
}

// Tables indexes reference data by its join keys.
type Tables struct {
	materials map[string]model.MaterialVolume
	tariffs   map[string]model.TariffEntry
	remaps    map[string]model.AddressRemap
	distances map[string]float64
	carriers  map[string]model.CarrierStatus
	fees      map[model.FeeKey]model.ManualFees

	// Address tables keyed by the raw source address, tried before the
	// normalized key.
	exactRemaps    map[string]model.AddressRemap
	exactDistances map[string]float64

	duplicateCarriers  []string
	remapCollisions    []string
	distanceCollisions []string
}

// New indexes src. Materials and tariffs keep the first entry for a key,
// carrier statuses keep the last. Address tables resolve colliding source
// addresses as described on indexByAddress, independent of map order.
func New(src Sources) *Tables {
	t := &Tables{
		materials: make(map[string]model.MaterialVolume, len(src.Materials)),
		tariffs:   make(map[string]model.TariffEntry, len(src.Tariffs)),
		carriers:  make(map[string]model.CarrierStatus, len(src.Carriers)),
		fees:      make(map[model.FeeKey]model.ManualFees, len(src.Fees)),
	}

	for _, m := range src.Materials {
		k := Key(m.MaterialNo)
		if _, ok := t.materials[k]; !ok {
			t.materials[k] = m
		}
	}
	for _, e := range src.Tariffs {
		k := Key(e.Ward)
		if _, ok := t.tariffs[k]; !ok {
			t.tariffs[k] = e
		}
	}
	t.exactRemaps = maps.Clone(src.Remaps)
	t.exactDistances = maps.Clone(src.Distances)
	t.remaps, t.remapCollisions = indexByAddress(src.Remaps)
	t.distances, t.distanceCollisions = indexByAddress(src.Distances)
	for _, c := range src.Carriers {
		k := Key(c.WaybillNo)
		if k == "" {
			continue
		}
		if _, ok := t.carriers[k]; ok {
			t.duplicateCarriers = append(t.duplicateCarriers, k)
		}
		t.carriers[k] = c
	}
	for _, f := range src.Fees {
		t.fees[normFeeKey(f.Key())] = f
	}

	return t
}

// Key normalizes a join key: NFC form with surrounding space trimmed.
// Addresses exported from different tools often differ only in Unicode
// composition of Vietnamese diacritics.
func Key(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normFeeKey(k model.FeeKey) model.FeeKey {
	return model.FeeKey{WaybillNo: Key(k.WaybillNo), MaterialNo: Key(k.MaterialNo)}
}

// indexByAddress keys m by normalized address. Raw keys are visited in sorted
// order. When several raw keys normalize to one key, a raw key already in
// normal form wins, otherwise the first in sort order. The normalized keys
// that had more than one raw key are returned in visiting order.
func indexByAddress[V any](m map[string]V) (map[string]V, []string) {
	raws := make([]string, 0, len(m))
	for raw := range m {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	out := make(map[string]V, len(m))
	canonical := make(map[string]bool, len(m))
	reported := make(map[string]bool)
	var collisions []string

	for _, raw := range raws {
		k := Key(raw)
		if _, ok := out[k]; ok {
			if !reported[k] {
				reported[k] = true
				collisions = append(collisions, k)
			}
			if canonical[k] || raw != k {
				continue
			}
		}
		out[k] = m[raw]
		canonical[k] = raw == k
	}
	return out, collisions
}

// Material returns the CBM entry for a material id.
func (t *Tables) Material(materialNo string) (model.MaterialVolume, bool) {
	m, ok := t.materials[Key(materialNo)]
	return m, ok
}

// UnitCBM returns the per-unit volume of a material, zero when unknown.
func (t *Tables) UnitCBM(materialNo string) decimal.Decimal {
	m, ok := t.Material(materialNo)
	if !ok {
		return decimal.Zero
	}
	return m.UnitCBM
}

// Tariff returns the price appendix row for a ward.
func (t *Tables) Tariff(ward string) (model.TariffEntry, bool) {
	e, ok := t.tariffs[Key(ward)]
	return e, ok
}

// TripPrice returns the per-trip price for a ward and truck type. Any miss
// along the way yields zero and false.
func (t *Tables) TripPrice(ward, truckType string) (decimal.Decimal, bool) {
	e, ok := t.Tariff(ward)
	if !ok {
		return decimal.Zero, false
	}
	truckType = strings.TrimSpace(truckType)
	if truckType == "" {
		return decimal.Zero, false
	}
	p, ok := e.TripPrice[truckType]
	if !ok {
		return decimal.Zero, false
	}
	return p, true
}

// Remap returns the ward/province remap of a raw address. An exact match on
// the source address wins over a normalized one.
func (t *Tables) Remap(address string) (model.AddressRemap, bool) {
	if r, ok := t.exactRemaps[address]; ok {
		return r, true
	}
	r, ok := t.remaps[Key(address)]
	return r, ok
}

// OldWard returns the pre-remap ward of an address, empty when unknown.
func (t *Tables) OldWard(address string) string {
	r, _ := t.Remap(address)
	return r.OldWard
}

// Distance returns the travel distance recorded for an address. An exact
// match on the source address wins over a normalized one.
func (t *Tables) Distance(address string) (float64, bool) {
	if d, ok := t.exactDistances[address]; ok {
		return d, true
	}
	d, ok := t.distances[Key(address)]
	return d, ok
}

// Carrier returns the carrier status row for a waybill.
func (t *Tables) Carrier(waybillNo string) (model.CarrierStatus, bool) {
	c, ok := t.carriers[Key(waybillNo)]
	return c, ok
}

// TruckType returns the truck type booked for a waybill, empty when unknown.
func (t *Tables) TruckType(waybillNo string) string {
	c, _ := t.Carrier(waybillNo)
	return strings.TrimSpace(c.TruckType)
}

// Fees returns the manual fee override for a waybill and material.
func (t *Tables) Fees(waybillNo, materialNo string) (model.ManualFees, bool) {
	f, ok := t.fees[normFeeKey(model.FeeKey{WaybillNo: waybillNo, MaterialNo: materialNo})]
	return f, ok
}

// DuplicateCarriers lists waybills that appeared more than once in the
// carrier export, in the order the repeats were seen.
func (t *Tables) DuplicateCarriers() []string {
	return t.duplicateCarriers
}

// AddressCollisions lists the normalized addresses that more than one source
// address collapsed into, for the remap and distance tables.
func (t *Tables) AddressCollisions() (remaps, distances []string) {
	return t.remapCollisions, t.distanceCollisions
}

// Sizes reports how many entries each table holds.
func (t *Tables) Sizes() map[string]int {
	return map[string]int{
		"materials": len(t.materials),
		"tariffs":   len(t.tariffs),
		"remaps":    len(t.remaps),
		"distances": len(t.distances),
		"carriers":  len(t.carriers),
		"fees":      len(t.fees),
	}
}
