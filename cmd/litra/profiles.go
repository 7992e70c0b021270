package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/litra/internal/profile"
)

func newProfilesCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List translation profiles in a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := profile.List(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintf(out, "No profiles found in %s\n", dir)
				return nil
			}
			fmt.Fprintf(out, "Profiles in %s:\n", dir)
			for _, s := range summaries {
				if s.Err != nil {
					fmt.Fprintf(out, "  %-24s (broken: %v)\n", s.File, s.Err)
					continue
				}
				fmt.Fprintf(out, "  %-24s %s\n", s.File, s.Name)
				if s.Description != "" {
					fmt.Fprintf(out, "  %-24s   %s\n", "", s.Description)
				}
				fmt.Fprintf(out, "  %-24s   source=%s, nouns=%d, seed_terms=%d, min_review_chars=%d\n",
					"", s.SourceLanguage, s.ProtectedNouns, s.GlossarySeed, s.MinReviewChars)
			}
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&dir, "dir", "profiles", "Directory containing profile JSON files")
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
