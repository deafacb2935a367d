package main

import (
	"fmt"

	"github.com/aretw0/waymark/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the catalog's kinds and transitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd, logger, nil)
		if err != nil {
			return err
		}

		md := tui.CatalogMarkdown(engine.Catalog())
		if plain {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		out, err := render(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("plain", false, "Print raw Markdown instead of rendering it")
}
