package model

import "github.com/shopspring/decimal"

// MaterialVolume is one row of the CBM table. UnitCBM is the cubic-meter
// volume of a single unit.
type MaterialVolume struct {
	MaterialNo   string          `json:"materialNo"`
	MaterialDesc string          `json:"materialDesp"`
	Length       float64         `json:"length"`
	Width        float64         `json:"width"`
	Height       float64         `json:"height"`
	UnitCBM      decimal.Decimal `json:"cbm"`
	Category     string          `json:"category"`
}

// TariffEntry is one ward's row of the price appendix.
type TariffEntry struct {
	Area      string                     `json:"area"`
	City      string                     `json:"city"`
	Ward      string                     `json:"ward"`
	Code      string                     `json:"code"`
	TripPrice map[string]decimal.Decimal `json:"trip_price"`
	CBMPrice  map[string]decimal.Decimal `json:"cbm_price"`
}

// AddressRemap holds the ward and province of an address before and after
// the administrative boundary change.
type AddressRemap struct {
	OldWard     string `json:"oldWard"`
	OldProvince string `json:"oldProvince"`
	NewWard     string `json:"newWard"`
	NewProvince string `json:"newProvince"`
}

// FeeKey identifies a manual fee override.
type FeeKey struct {
	WaybillNo  string
	MaterialNo string
}

// ManualFees are the exception surcharges entered by hand for a waybill and
// material. Missing categories are zero.
type ManualFees struct {
	WaybillNo  string          `yaml:"waybill" json:"waybillNo"`
	MaterialNo string          `yaml:"material" json:"materialNo"`
	Overnight  decimal.Decimal `yaml:"overnight" json:"overnightFee"`
	Transfer   decimal.Decimal `yaml:"transfer" json:"transferFee"`
	Return     decimal.Decimal `yaml:"return" json:"returnFee"`
	OffRoute   decimal.Decimal `yaml:"off_route" json:"abnormalFee"`
	Waiting    decimal.Decimal `yaml:"waiting" json:"waitingFee"`
	Others     decimal.Decimal `yaml:"others" json:"othersFee"`
}

// Key returns the override's lookup key.
func (f ManualFees) Key() FeeKey {
	return FeeKey{WaybillNo: f.WaybillNo, MaterialNo: f.MaterialNo}
}

// Sum adds all six categories.
func (f ManualFees) Sum() decimal.Decimal {
	return f.Overnight.Add(f.Transfer).Add(f.Return).Add(f.OffRoute).Add(f.Waiting).Add(f.Others)
}
