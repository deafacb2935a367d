package main

import (
	"bufio"
	"fmt"

	"github.com/aretw0/waymark/pkg/codec"
	"github.com/aretw0/waymark/pkg/config"
	"github.com/aretw0/waymark/pkg/hypermedia"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render RECORDS_FILE",
	Short: "Render records with their links to stdout",
	Long: `Loads the records of RECORDS_FILE (YAML or JSON), binds each one to the
catalog and writes its representation to stdout, one document per record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		baseURL, _ := cmd.Flags().GetString("base-url")
		noLinks, _ := cmd.Flags().GetBool("no-links")
		indent, _ := cmd.Flags().GetString("indent")

		format, err := codec.ParseFormat(formatName)
		if err != nil {
			return err
		}

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd, logger, nil)
		if err != nil {
			return err
		}

		records, err := config.LoadRecords(args[0])
		if err != nil {
			return err
		}

		opts := hypermedia.Options{}
		opts.Indent = indent
		if !noLinks {
			ctrl, err := hypermedia.NewTemplateController(baseURL)
			if err != nil {
				return err
			}
			opts.Controller = ctrl
		}

		out := bufio.NewWriter(cmd.OutOrStdout())
		defer out.Flush()

		for i, rec := range records {
			bound, err := engine.Bind(rec)
			if err != nil {
				return fmt.Errorf("record %s/%s: %w", rec.Kind, rec.ID, err)
			}
			if i > 0 && format == codec.YAML {
				fmt.Fprintln(out, "---")
			}
			if err := engine.Write(out, bound, format, opts); err != nil {
				return fmt.Errorf("record %s/%s: %w", rec.Kind, rec.ID, err)
			}
			if format == codec.XML {
				fmt.Fprintln(out)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", "json", "Output format: json, xml, yaml")
	renderCmd.Flags().String("base-url", "", "Base URL the link hrefs are resolved against")
	renderCmd.Flags().Bool("no-links", false, "Render the plain representation")
	renderCmd.Flags().String("indent", "", "Indentation for pretty output (e.g. two spaces)")
}
