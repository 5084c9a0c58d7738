package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tech-blog/services"
)

func NewSearchCmd(provide appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search posts",
		Long:  `Rank posts by weighted term matches in title, excerpt, tags, category path and body.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  makeSearchRunner(provide),
	}

	cmd.Flags().String("category", "", "Keep posts whose category path contains this text")
	cmd.Flags().StringSlice("tag", nil, "Keep posts with any of these tags")
	cmd.Flags().String("from", "", "Published on or after (e.g. 2024-01-01)")
	cmd.Flags().String("to", "", "Published on or before")
	return cmd
}

func makeSearchRunner(provide appProvider) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := provide(cmd)
		if err != nil {
			return err
		}
		category, _ := cmd.Flags().GetString("category")
		tags, _ := cmd.Flags().GetStringSlice("tag")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		out, err := a.Search.Search(contextOf(cmd), services.SearchInput{
			Query:    strings.Join(args, " "),
			Category: category,
			Tags:     tags,
			From:     from,
			To:       to,
		})
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		if wantJSON(cmd) {
			return writeJSON(cmd, out)
		}

		if out.State == "no_results" {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for %q\n", out.Query)
			return nil
		}
		for _, r := range out.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-40s  %s\n", r.Score, r.Post.Slug, strings.Join(r.MatchedFields, ","))
		}
		return nil
	}
}
