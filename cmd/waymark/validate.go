package main

import (
	"fmt"

	"github.com/aretw0/waymark/internal/validator"
	"github.com/aretw0/waymark/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [RECORDS_FILE]",
	Short: "Check the catalog and, optionally, a records file against it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd, logger, nil)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			records, err := config.LoadRecords(args[0])
			if err != nil {
				return err
			}
			if err := validator.ValidateRecords(engine.Catalog(), records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d records valid\n", len(records))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "catalog valid: %d kinds\n", len(engine.Catalog().Kinds()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
