// Package refdata persists the reference tables as JSON (and YAML for the
// hand-edited fee overrides) in the data directory.
package refdata

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/freight-recon/internal/fetcher"
	"github.com/sells-group/freight-recon/internal/lookup"
	"github.com/sells-group/freight-recon/internal/model"
	"github.com/sells-group/freight-recon/internal/source"
)

// Files locates the reference tables. Materials and Tariffs are required;
// the rest degrade to empty tables when absent.
type Files struct {
	Materials string
	Tariffs   string
	Remaps    string
	Distances string
	Fees      string
}

// Load reads all reference tables concurrently. Carrier statuses are not
// part of the store and are left empty.
func Load(ctx context.Context, files Files) (lookup.Sources, error) {
	var src lookup.Sources
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		src.Materials, err = loadMaterials(gctx, files.Materials)
		return err
	})
	g.Go(func() error {
		var err error
		src.Tariffs, err = loadTariffs(gctx, files.Tariffs)
		return err
	})
	g.Go(func() error {
		src.Remaps = loadOptional(gctx, files.Remaps, decodeRemaps)
		return nil
	})
	g.Go(func() error {
		src.Distances = loadOptional(gctx, files.Distances, decodeDistances)
		return nil
	})
	g.Go(func() error {
		src.Fees = loadOptional(gctx, files.Fees, decodeFees)
		return nil
	})

	if err := g.Wait(); err != nil {
		return lookup.Sources{}, err
	}

	zap.L().Info("reference tables loaded",
		zap.Int("materials", len(src.Materials)),
		zap.Int("tariffs", len(src.Tariffs)),
		zap.Int("remaps", len(src.Remaps)),
		zap.Int("distances", len(src.Distances)),
		zap.Int("fees", len(src.Fees)),
	)
	return src, nil
}

func readRequired(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "refdata: context cancelled")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(fetcher.ErrSourceNotFound, "refdata: %s", path)
		}
		return nil, eris.Wrapf(err, "refdata: read %s", path)
	}
	return data, nil
}

// loadOptional returns the zero table when path is unset, missing or
// unreadable.
func loadOptional[T any](ctx context.Context, path string, decode func([]byte) (T, error)) T {
	var zero T
	if path == "" || ctx.Err() != nil {
		return zero
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Warn("optional reference table not found", zap.String("path", path))
		} else {
			zap.L().Warn("optional reference table unreadable", zap.String("path", path), zap.Error(err))
		}
		return zero
	}
	v, err := decode(data)
	if err != nil {
		zap.L().Warn("optional reference table invalid", zap.String("path", path), zap.Error(err))
		return zero
	}
	return v
}

type rawMaterial struct {
	MaterialNo   any `json:"materialNo"`
	MaterialDesc any `json:"materialDesp"`
	Length       any `json:"length"`
	Width        any `json:"width"`
	Height       any `json:"height"`
	CBM          any `json:"cbm"`
	Category     any `json:"category"`
}

func loadMaterials(ctx context.Context, path string) ([]model.MaterialVolume, error) {
	data, err := readRequired(ctx, path)
	if err != nil {
		return nil, err
	}
	raw, err := fetcher.DecodeJSONArray[rawMaterial](bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: decode %s", path)
	}

	out := make([]model.MaterialVolume, 0, len(raw))
	for _, r := range raw {
		out = append(out, model.MaterialVolume{
			MaterialNo:   text(r.MaterialNo),
			MaterialDesc: text(r.MaterialDesc),
			Length:       amount(r.Length).InexactFloat64(),
			Width:        amount(r.Width).InexactFloat64(),
			Height:       amount(r.Height).InexactFloat64(),
			UnitCBM:      amount(r.CBM),
			Category:     text(r.Category),
		})
	}
	return out, nil
}

type rawTariff struct {
	Area      any            `json:"area"`
	City      any            `json:"city"`
	Ward      any            `json:"ward"`
	Code      any            `json:"code"`
	TripPrice map[string]any `json:"trip_price"`
	CBMPrice  map[string]any `json:"cbm_price"`
}

func loadTariffs(ctx context.Context, path string) ([]model.TariffEntry, error) {
	data, err := readRequired(ctx, path)
	if err != nil {
		return nil, err
	}
	raw, err := fetcher.DecodeJSONArray[rawTariff](bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: decode %s", path)
	}

	out := make([]model.TariffEntry, 0, len(raw))
	for _, r := range raw {
		out = append(out, model.TariffEntry{
			Area:      text(r.Area),
			City:      text(r.City),
			Ward:      text(r.Ward),
			Code:      text(r.Code),
			TripPrice: priceMap(r.TripPrice),
			CBMPrice:  priceMap(r.CBMPrice),
		})
	}
	return out, nil
}

func decodeRemaps(data []byte) (map[string]model.AddressRemap, error) {
	out, err := fetcher.DecodeJSONObject[map[string]model.AddressRemap](bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "refdata: decode address remaps")
	}
	return *out, nil
}

func decodeDistances(data []byte) (map[string]float64, error) {
	raw, err := fetcher.DecodeJSONObject[map[string]any](bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "refdata: decode distances")
	}
	out := make(map[string]float64, len(*raw))
	for addr, v := range *raw {
		if d, ok := source.ParseAmount(text(v)); ok {
			out[addr] = d.InexactFloat64()
		}
	}
	return out, nil
}

func decodeFees(data []byte) ([]model.ManualFees, error) {
	var out []model.ManualFees
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, eris.Wrap(err, "refdata: decode manual fees")
	}
	return out, nil
}

// text renders a loosely typed JSON scalar. Material codes and wards are
// often exported as numbers.
func text(v any) string {
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}

func amount(v any) decimal.Decimal {
	d, _ := source.ParseAmount(text(v))
	return d
}

func priceMap(raw map[string]any) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(raw))
	for k, v := range raw {
		if d, ok := source.ParseAmount(text(v)); ok {
			out[k] = d
		}
	}
	return out
}

// SaveMaterials writes the CBM table.
func SaveMaterials(path string, materials []model.MaterialVolume) error {
	return writeJSON(path, materials)
}

// SaveTariffs writes the price appendix table.
func SaveTariffs(path string, tariffs []model.TariffEntry) error {
	return writeJSON(path, tariffs)
}

// SaveAddressRemaps writes the address remap table.
func SaveAddressRemaps(path string, remaps map[string]model.AddressRemap) error {
	return writeJSON(path, remaps)
}

// SaveCarrierStatuses writes a snapshot of the carrier export.
func SaveCarrierStatuses(path string, statuses []model.CarrierStatus) error {
	return writeJSON(path, statuses)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "refdata: create directory for %s", path)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "refdata: encode %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "refdata: write %s", path)
	}
	zap.L().Info("reference table written", zap.String("path", path))
	return nil
}
