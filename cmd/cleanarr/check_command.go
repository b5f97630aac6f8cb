package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cleanarr/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify directories and media server connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			src, err := newCatalogSource(cfg)
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), preflight.Request{
				AssetsDir:   cfg.Paths.AssetsDir,
				MediaDirs:   cfg.Paths.MediaDirs,
				WriteAssets: !cfg.DryRun,
				Catalog:     src,
			})

			rows := make([][]string, 0, len(results))
			for _, result := range results {
				rows = append(rows, []string{result.Name, yesNo(result.Passed), result.Detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Check", "OK", "Detail"}, rows, nil))
			if src == nil {
				fmt.Fprintln(out, "No catalog libraries configured; collections will not be checked.")
			}
			return preflight.Failures(results)
		},
	}
}
