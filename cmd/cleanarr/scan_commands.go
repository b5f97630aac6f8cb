package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cleanarr/internal/assetscan"
	"cleanarr/internal/mediascan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Inspect what the scanners see without changing anything",
	}
	scanCmd.AddCommand(newScanAssetsCommand(ctx))
	scanCmd.AddCommand(newScanMediaCommand(ctx))
	return scanCmd
}

func newScanAssetsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assets",
		Short: "List asset entries grouped by kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			layout := assetscan.LayoutFor(cfg.Assets.AssetFolders)
			assets, err := assetscan.Scan(cfg.Paths.AssetsDir, layout)
			if err != nil {
				return fmt.Errorf("scan assets: %w", err)
			}

			rows := make([][]string, 0, assets.Len())
			for _, entry := range assets.All() {
				rows = append(rows, []string{entry.Kind.String(), entry.Title, strconv.Itoa(len(entry.Files))})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Asset directory: %s (%s)\n", cfg.Paths.AssetsDir, layout)
			if len(rows) == 0 {
				fmt.Fprintln(out, "No assets found")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Kind", "Title", "Files"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			return nil
		},
	}
}

func newScanMediaCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "media",
		Short: "List movies and series found in the media directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			media, err := mediascan.Scan(cfg.Paths.MediaDirs, logger)
			if err != nil {
				return fmt.Errorf("scan media: %w", err)
			}

			rows := make([][]string, 0, len(media.Movies)+len(media.Series))
			for _, movie := range media.Movies {
				rows = append(rows, []string{"movie", movie.Title, ""})
			}
			for _, series := range media.Series {
				rows = append(rows, []string{"series", series.Title, strings.Join(series.Seasons, ", ")})
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No media found")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Kind", "Title", "Seasons"}, rows, nil))
			return nil
		},
	}
}
