package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/mentorhub/internal/app/features/companies"
	"github.com/dalemusser/mentorhub/internal/app/features/indicators"
	"github.com/dalemusser/mentorhub/internal/app/system/export"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write records to an XLSX workbook",
}

var exportCompaniesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Export every company plus the summary sheets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, "companies", companies.BuildWorkbook)
	},
}

var exportIndicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "Export every indicator plus the summary sheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, "indicators", indicators.BuildWorkbook)
	},
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "", "Output file (required)")
	_ = exportCmd.MarkPersistentFlagRequired("out")
	exportCmd.AddCommand(exportCompaniesCmd, exportIndicatorsCmd)
}

type buildFunc func(ctx context.Context, db *mongo.Database) (*export.Workbook, int, error)

func runExport(cmd *cobra.Command, what string, build buildFunc) error {
	return withDB(cmd.Context(), func(ctx context.Context, db *mongo.Database) error {
		wb, rows, err := build(ctx, db)
		if err != nil {
			return err
		}
		defer wb.Close()

		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		if err := wb.Write(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("export written", zap.String("records", what), zap.Int("rows", rows), zap.String("file", exportOut))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d %s to %s\n", rows, what, exportOut)
		return nil
	})
}
