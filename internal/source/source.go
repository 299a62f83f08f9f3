// Package source decodes the operation, carrier and reference exports into
// model records.
package source

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/freight-recon/internal/fetcher"
	"github.com/sells-group/freight-recon/internal/model"
)

// OperationColumns is the operation export's column layout after STT.
var OperationColumns = fetcher.Cols(
	"vehicleNo",
	"waybillNo",
	"pickupDate",
	"soNo",
	"soldToCode",
	"dnNo",
	"materialNo",
	"materialDesp",
	"deliveryQuantity",
	"storageLocation",
	"poNo",
	"shipToName",
	"soldToName",
	"shipToAddress",
	"rdd",
)

// CarrierColumns is the carrier tracking export's column layout.
var CarrierColumns = fetcher.Cols(
	"status",
	"waybillNo",
	"TMSDNs",
	"SAPDN",
	"addingPoint",
	"loadingRate",
	"budgetNumber",
	"issuingWarehouse",
	"receivingWarehouse",
	"carrierName",
	"truckType",
	"estimatePickUpTime",
	"refuseToOrder",
	"rejectReasonDetail",
	"createBy",
	"creationDate",
)

// MaterialColumns is the CBM dimension table's column layout.
var MaterialColumns = fetcher.Cols(
	"materialNo",
	"materialDesp",
	"length",
	"width",
	"height",
	"cbm",
	"category",
)

// TariffColumns is the price appendix's column layout for the given truck
// types and volume tiers.
func TariffColumns(truckTypes, cbmTiers []string) []fetcher.Column {
	return []fetcher.Column{
		fetcher.Col("area"),
		fetcher.Col("city"),
		fetcher.Col("ward"),
		fetcher.Col("code"),
		fetcher.GroupCol("trip_price", truckTypes...),
		fetcher.GroupCol("cbm_price", cbmTiers...),
	}
}

// mmToCBM converts cubic millimeters to cubic meters.
var mmToCBM = decimal.New(1, 9)

// ParseAmount parses a numeric cell. Thousands commas are ignored; blank or
// non-numeric text reports false.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Operations decodes operation export rows. Pickup dates written with dots
// are normalized to slashes.
func Operations(recs []fetcher.Record) []model.DeliveryRecord {
	out := make([]model.DeliveryRecord, 0, len(recs))
	for _, r := range recs {
		out = append(out, model.DeliveryRecord{
			VehicleNo:         r.Get("vehicleNo"),
			WaybillNo:         r.Get("waybillNo"),
			PickupDate:        strings.ReplaceAll(r.Get("pickupDate"), ".", "/"),
			SONo:              r.Get("soNo"),
			SoldToCode:        r.Get("soldToCode"),
			DNNo:              r.Get("dnNo"),
			MaterialNo:        r.Get("materialNo"),
			MaterialDesc:      r.Get("materialDesp"),
			DeliveredQuantity: r.Get("deliveryQuantity"),
			StorageLocation:   r.Get("storageLocation"),
			PONo:              r.Get("poNo"),
			ShipToName:        r.Get("shipToName"),
			SoldToName:        r.Get("soldToName"),
			ShipToAddress:     r.Get("shipToAddress"),
			RDD:               r.Get("rdd"),
		})
	}
	return out
}

// CarrierStatuses decodes carrier tracking rows.
func CarrierStatuses(recs []fetcher.Record) []model.CarrierStatus {
	out := make([]model.CarrierStatus, 0, len(recs))
	for _, r := range recs {
		out = append(out, model.CarrierStatus{
			Status:             r.Get("status"),
			WaybillNo:          r.Get("waybillNo"),
			TMSDNs:             r.Get("TMSDNs"),
			SAPDN:              r.Get("SAPDN"),
			AddingPoint:        r.Get("addingPoint"),
			LoadingRate:        r.Get("loadingRate"),
			BudgetNumber:       r.Get("budgetNumber"),
			IssuingWarehouse:   r.Get("issuingWarehouse"),
			ReceivingWarehouse: r.Get("receivingWarehouse"),
			CarrierName:        r.Get("carrierName"),
			TruckType:          r.Get("truckType"),
			EstimatePickUpTime: r.Get("estimatePickUpTime"),
			RefuseToOrder:      r.Get("refuseToOrder"),
			RejectReasonDetail: r.Get("rejectReasonDetail"),
			CreatedBy:          r.Get("createBy"),
			CreationDate:       r.Get("creationDate"),
		})
	}
	return out
}

// MaterialVolumes decodes the dimension table. Dimensions are millimeters;
// the unit volume is recomputed as L×W×H / 1e9 rather than trusting the
// sheet's own CBM column.
func MaterialVolumes(recs []fetcher.Record) []model.MaterialVolume {
	out := make([]model.MaterialVolume, 0, len(recs))
	for _, r := range recs {
		l, _ := ParseAmount(r.Get("length"))
		w, _ := ParseAmount(r.Get("width"))
		h, _ := ParseAmount(r.Get("height"))
		out = append(out, model.MaterialVolume{
			MaterialNo:   r.Get("materialNo"),
			MaterialDesc: r.Get("materialDesp"),
			Length:       l.InexactFloat64(),
			Width:        w.InexactFloat64(),
			Height:       h.InexactFloat64(),
			UnitCBM:      l.Mul(w).Mul(h).Div(mmToCBM),
			Category:     r.Get("category"),
		})
	}
	return out
}

// Tariffs decodes price appendix rows. Blank or non-numeric prices are left
// out of the price maps.
func Tariffs(recs []fetcher.Record) []model.TariffEntry {
	out := make([]model.TariffEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, model.TariffEntry{
			Area:      r.Get("area"),
			City:      r.Get("city"),
			Ward:      r.Get("ward"),
			Code:      r.Get("code"),
			TripPrice: prices(r.Group("trip_price")),
			CBMPrice:  prices(r.Group("cbm_price")),
		})
	}
	return out
}

func prices(group map[string]string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(group))
	for k, v := range group {
		if d, ok := ParseAmount(v); ok {
			out[k] = d
		}
	}
	return out
}

// AddressRemaps decodes pipe-delimited remap rows of the form
// oldWard|oldProvince|address|newWard|newProvince. Later rows for the same
// address replace earlier ones.
func AddressRemaps(rows [][]string) map[string]model.AddressRemap {
	out := make(map[string]model.AddressRemap, len(rows))
	for _, p := range rows {
		if len(p) < 5 {
			continue
		}
		out[p[2]] = model.AddressRemap{
			OldWard:     p[0],
			OldProvince: p[1],
			NewWard:     p[3],
			NewProvince: p[4],
		}
	}
	return out
}

// ReadOperations reads the operation export.
func ReadOperations(path string) ([]model.DeliveryRecord, error) {
	recs, err := fetcher.ReadMapped(path, OperationColumns, 1)
	if err != nil {
		return nil, eris.Wrap(err, "source: read operations")
	}
	return Operations(recs), nil
}

// ReadCarrierStatuses reads the carrier tracking export.
func ReadCarrierStatuses(path string) ([]model.CarrierStatus, error) {
	recs, err := fetcher.ReadMapped(path, CarrierColumns, 1)
	if err != nil {
		return nil, eris.Wrap(err, "source: read carrier statuses")
	}
	return CarrierStatuses(recs), nil
}

// ReadMaterialVolumes reads the CBM dimension workbook.
func ReadMaterialVolumes(path string) ([]model.MaterialVolume, error) {
	recs, err := fetcher.ReadMapped(path, MaterialColumns, 1)
	if err != nil {
		return nil, eris.Wrap(err, "source: read material dimensions")
	}
	return MaterialVolumes(recs), nil
}

// ReadTariffs reads the price appendix workbook. The appendix header spans
// headerOffset rows.
func ReadTariffs(path string, truckTypes, cbmTiers []string, headerOffset int) ([]model.TariffEntry, error) {
	recs, err := fetcher.ReadMapped(path, TariffColumns(truckTypes, cbmTiers), headerOffset)
	if err != nil {
		return nil, eris.Wrap(err, "source: read tariffs")
	}
	return Tariffs(recs), nil
}

// ReadAddressRemaps reads the pipe-delimited address remap text file.
func ReadAddressRemaps(path string) (map[string]model.AddressRemap, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(fetcher.ErrSourceNotFound, "source: %s", path)
		}
		return nil, eris.Wrap(err, "source: open address remaps")
	}
	defer f.Close()

	rows, err := fetcher.ReadDelimited(f, fetcher.DelimitedOptions{
		Delimiter: '|',
		TrimSpace: true,
		MinFields: 5,
	})
	if err != nil {
		return nil, eris.Wrap(err, "source: read address remaps")
	}
	return AddressRemaps(rows), nil
}
