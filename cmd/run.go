package main

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/freight-recon/internal/config"
	"github.com/sells-group/freight-recon/internal/cost"
	"github.com/sells-group/freight-recon/internal/lookup"
	"github.com/sells-group/freight-recon/internal/refdata"
	"github.com/sells-group/freight-recon/internal/report"
	"github.com/sells-group/freight-recon/internal/source"
	"github.com/sells-group/freight-recon/internal/trip"
)

var runOutput string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the freight cost report from the operation export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if runOutput != "" {
			cfg.Paths.Output = runOutput
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := zap.L().With(zap.String("run_id", uuid.NewString()))

		sum, err := reconcile(cmd.Context(), cfg, log)
		if err != nil {
			log.Error("run failed", zap.Error(err))
			return err
		}

		log.Info("report complete",
			zap.String("output", cfg.Paths.Output),
			zap.Int("records", sum.Records),
			zap.Int("trips", sum.Trips),
			zap.Int("multi_stop_trips", sum.MultiStop),
			zap.Int("rows", sum.Rows),
			zap.Int("lookup_misses", sum.Misses),
			zap.String("grand_total", humanize.Comma(sum.GrandTotal.IntPart())),
		)
		return nil
	},
}

// runSummary describes one completed report run.
type runSummary struct {
	Records    int
	Trips      int
	MultiStop  int
	Rows       int
	Misses     int
	GrandTotal decimal.Decimal
}

// reconcile loads every input, prices the trips and writes the report. No
// report is written when a required source is missing.
func reconcile(ctx context.Context, c *config.Config, log *zap.Logger) (runSummary, error) {
	var sum runSummary

	src, err := refdata.Load(ctx, refdata.Files{
		Materials: c.TablePath(c.Tables.Materials),
		Tariffs:   c.TablePath(c.Tables.Tariffs),
		Remaps:    c.TablePath(c.Tables.Remaps),
		Distances: c.TablePath(c.Tables.Distances),
		Fees:      c.TablePath(c.Tables.Fees),
	})
	if err != nil {
		return sum, eris.Wrap(err, "load reference tables")
	}

	records, err := source.ReadOperations(c.SourcePath(c.Sources.Operation))
	if err != nil {
		return sum, err
	}
	src.Carriers, err = source.ReadCarrierStatuses(c.SourcePath(c.Sources.Carrier))
	if err != nil {
		return sum, err
	}

	tables := lookup.New(src)
	log.Info("lookup tables indexed", zap.Any("sizes", tables.Sizes()))
	if remaps, distances := tables.AddressCollisions(); len(remaps)+len(distances) > 0 {
		log.Warn("source addresses collapse to the same normalized address",
			zap.Strings("remaps", remaps),
			zap.Strings("distances", distances),
		)
	}
	if dups := tables.DuplicateCarriers(); len(dups) > 0 {
		log.Warn("duplicate carrier statuses, keeping the last row per waybill",
			zap.Int("count", len(dups)),
			zap.Strings("waybills", dups),
		)
	}

	trips := trip.Build(records, tables)

	misses := trip.Audit(trips, tables)
	for _, m := range misses {
		log.Warn("lookup miss",
			zap.String("kind", string(m.Kind)),
			zap.String("key", m.Key),
			zap.String("waybill", m.WaybillNo),
		)
	}

	rows, grandTotal := report.Build(trips, tables, cost.NewCalculator(c.Rates))
	if err := report.WriteXLSX(c.Paths.Output, rows); err != nil {
		return sum, err
	}

	sum.Records = len(records)
	sum.Trips = len(trips)
	sum.Rows = len(rows)
	sum.Misses = len(misses)
	sum.GrandTotal = grandTotal
	for _, t := range trips {
		if t.MultiStop {
			sum.MultiStop++
		}
	}

	return sum, nil
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "report path (overrides paths.output)")
	rootCmd.AddCommand(runCmd)
}
