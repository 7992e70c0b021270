package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/litra/internal/metadata"
)

func newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List known models and pricing",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Known models (prices per million tokens):")
			for _, m := range metadata.Models() {
				marker := " "
				if m.ID == metadata.DefaultModelID {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-32s %-8s in=$%.2f out=$%.2f", marker, m.ID, m.Provider, m.InputPerMillion, m.OutputPerMillion)
				if m.CacheReadPerMillion > 0 {
					fmt.Fprintf(out, " cache_read=$%.2f cache_write=$%.2f", m.CacheReadPerMillion, m.CacheWritePerMillion)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, "\n* default model")
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
