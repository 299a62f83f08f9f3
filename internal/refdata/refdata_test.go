package refdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/freight-recon/internal/fetcher"
	"github.com/sells-group/freight-recon/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testFiles(t *testing.T) Files {
	t.Helper()
	dir := t.TempDir()
	return Files{
		Materials: writeFile(t, dir, "cbm.json", `[
  {"materialNo": 10023, "materialDesp": "Fridge", "length": 600, "width": 700, "height": 1800, "cbm": 0.756, "category": "REF"},
  {"materialNo": "M2", "cbm": "0.5", "category": "TV"}
]`),
		Tariffs: writeFile(t, dir, "appendix-price.json", `[
  {"area": "North", "city": "Ha Noi", "ward": "Hoan Kiem", "code": 101,
   "trip_price": {"2.5T": "", "5T": 1200000, "8T": "1800000"},
   "cbm_price": {"2cbm": 50000}}
]`),
		Remaps: writeFile(t, dir, "address-mock.json", `{
  "3 Hang Bac": {"oldWard": "Hoan Kiem", "oldProvince": "Ha Noi", "newWard": "Hoan Kiem", "newProvince": "Ha Noi"}
}`),
		Distances: writeFile(t, dir, "address-distance.json", `{"3 Hang Bac": "12.5", "far": 300, "blank": ""}`),
		Fees: writeFile(t, dir, "manual-fees.yaml", `
- waybill: WB1
  material: M2
  overnight: 100000
  waiting: "25000"
`),
	}
}

func TestLoad(t *testing.T) {
	src, err := Load(context.Background(), testFiles(t))
	require.NoError(t, err)

	require.Len(t, src.Materials, 2)
	assert.Equal(t, "10023", src.Materials[0].MaterialNo)
	assert.True(t, decimal.RequireFromString("0.756").Equal(src.Materials[0].UnitCBM))
	assert.InDelta(t, 1800, src.Materials[0].Height, 0.001)
	assert.True(t, decimal.RequireFromString("0.5").Equal(src.Materials[1].UnitCBM))

	require.Len(t, src.Tariffs, 1)
	tariff := src.Tariffs[0]
	assert.Equal(t, "101", tariff.Code)
	assert.True(t, decimal.NewFromInt(1200000).Equal(tariff.TripPrice["5T"]))
	assert.True(t, decimal.NewFromInt(1800000).Equal(tariff.TripPrice["8T"]))
	_, ok := tariff.TripPrice["2.5T"]
	assert.False(t, ok)

	assert.Equal(t, "Hoan Kiem", src.Remaps["3 Hang Bac"].OldWard)

	assert.InDelta(t, 12.5, src.Distances["3 Hang Bac"], 0.0001)
	assert.InDelta(t, 300, src.Distances["far"], 0.0001)
	_, ok = src.Distances["blank"]
	assert.False(t, ok)

	require.Len(t, src.Fees, 1)
	assert.Equal(t, model.FeeKey{WaybillNo: "WB1", MaterialNo: "M2"}, src.Fees[0].Key())
	assert.True(t, decimal.NewFromInt(125000).Equal(src.Fees[0].Sum()))
}

func TestLoad_OptionalTablesMissing(t *testing.T) {
	files := testFiles(t)
	dir := t.TempDir()
	files.Remaps = filepath.Join(dir, "absent.json")
	files.Distances = writeFile(t, dir, "broken.json", "{not json")
	files.Fees = ""

	src, err := Load(context.Background(), files)
	require.NoError(t, err)
	assert.Empty(t, src.Remaps)
	assert.Empty(t, src.Distances)
	assert.Empty(t, src.Fees)
	assert.Len(t, src.Materials, 2)
}

func TestLoad_RequiredTableMissing(t *testing.T) {
	files := testFiles(t)
	files.Tariffs = filepath.Join(t.TempDir(), "appendix-price.json")

	_, err := Load(context.Background(), files)
	require.Error(t, err)
	assert.True(t, eris.Is(err, fetcher.ErrSourceNotFound))
}

func TestLoad_RequiredTableInvalid(t *testing.T) {
	files := testFiles(t)
	files.Materials = writeFile(t, t.TempDir(), "cbm.json", `{"materialNo": "M1"}`)

	_, err := Load(context.Background(), files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refdata: decode")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	files := Files{
		Materials: filepath.Join(dir, "cbm.json"),
		Tariffs:   filepath.Join(dir, "appendix-price.json"),
		Remaps:    filepath.Join(dir, "address-mock.json"),
	}

	require.NoError(t, SaveMaterials(files.Materials, []model.MaterialVolume{
		{MaterialNo: "M1", UnitCBM: decimal.RequireFromString("0.125"), Category: "TV"},
	}))
	require.NoError(t, SaveTariffs(files.Tariffs, []model.TariffEntry{
		{Ward: "W1", TripPrice: map[string]decimal.Decimal{"5T": decimal.NewFromInt(900000)}},
	}))
	require.NoError(t, SaveAddressRemaps(files.Remaps, map[string]model.AddressRemap{
		"addr": {OldWard: "W1"},
	}))

	src, err := Load(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, src.Materials, 1)
	assert.True(t, decimal.RequireFromString("0.125").Equal(src.Materials[0].UnitCBM))
	assert.True(t, decimal.NewFromInt(900000).Equal(src.Tariffs[0].TripPrice["5T"]))
	assert.Equal(t, "W1", src.Remaps["addr"].OldWard)
}

func TestSaveCarrierStatuses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tms.json")
	require.NoError(t, SaveCarrierStatuses(path, []model.CarrierStatus{{WaybillNo: "WB1", TruckType: "5T"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"truckType": "5T"`)
}
