package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/freight-recon/internal/refdata"
	"github.com/sells-group/freight-recon/internal/source"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert reference exports into the lookup tables in the data directory",
}

var convertCBMCmd = &cobra.Command{
	Use:   "cbm",
	Short: "Build the material volume table from the CBM workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, out := cfg.SourcePath(cfg.Sources.CBM), cfg.TablePath(cfg.Tables.Materials)

		materials, err := source.ReadMaterialVolumes(in)
		if err != nil {
			return err
		}
		if err := refdata.SaveMaterials(out, materials); err != nil {
			return eris.Wrap(err, "convert cbm")
		}

		zap.L().Info("material table written", zap.String("in", in), zap.String("out", out), zap.Int("materials", len(materials)))
		return nil
	},
}

var convertTariffCmd = &cobra.Command{
	Use:   "tariff",
	Short: "Build the tariff table from the price appendix workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, out := cfg.SourcePath(cfg.Sources.Tariff), cfg.TablePath(cfg.Tables.Tariffs)

		tariffs, err := source.ReadTariffs(in, cfg.Tariff.TruckTypes, cfg.Tariff.CBMTiers, cfg.Tariff.HeaderOffset)
		if err != nil {
			return err
		}
		if err := refdata.SaveTariffs(out, tariffs); err != nil {
			return eris.Wrap(err, "convert tariff")
		}

		zap.L().Info("tariff table written", zap.String("in", in), zap.String("out", out), zap.Int("wards", len(tariffs)))
		return nil
	},
}

var convertCarrierCmd = &cobra.Command{
	Use:   "carrier",
	Short: "Dump the carrier tracking export as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, out := cfg.SourcePath(cfg.Sources.Carrier), cfg.TablePath(cfg.Tables.CarrierStatus)

		statuses, err := source.ReadCarrierStatuses(in)
		if err != nil {
			return err
		}
		if err := refdata.SaveCarrierStatuses(out, statuses); err != nil {
			return eris.Wrap(err, "convert carrier")
		}

		zap.L().Info("carrier statuses written", zap.String("in", in), zap.String("out", out), zap.Int("statuses", len(statuses)))
		return nil
	},
}

var convertAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Build the address remap table from the pipe-delimited address text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, out := cfg.SourcePath(cfg.Sources.AddressRaw), cfg.TablePath(cfg.Tables.Remaps)

		remaps, err := source.ReadAddressRemaps(in)
		if err != nil {
			return err
		}
		if err := refdata.SaveAddressRemaps(out, remaps); err != nil {
			return eris.Wrap(err, "convert address")
		}

		zap.L().Info("address remap table written", zap.String("in", in), zap.String("out", out), zap.Int("addresses", len(remaps)))
		return nil
	},
}

func init() {
	convertCmd.AddCommand(convertCBMCmd, convertTariffCmd, convertCarrierCmd, convertAddressCmd)
	rootCmd.AddCommand(convertCmd)
}
