package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tech-blog/dto"
	"tech-blog/services"
)

func NewPostsCmd(provide appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}
			category, _ := cmd.Flags().GetString("category")
			tag, _ := cmd.Flags().GetString("tag")
			sort, _ := cmd.Flags().GetString("sort")
			limit, _ := cmd.Flags().GetInt("number")

			out, err := a.Posts.List(contextOf(cmd), services.ListPostsInput{
				Category: category,
				Tag:      tag,
				Sort:     sort,
				Limit:    limit,
			})
			if err != nil {
				return fmt.Errorf("list posts: %w", err)
			}
			if wantJSON(cmd) {
				return writeJSON(cmd, out)
			}
			printSummaries(cmd, out.Data)
			return nil
		},
	}

	cmd.Flags().String("category", "", "Category display name")
	cmd.Flags().String("tag", "", "Tag")
	cmd.Flags().String("sort", "", "Sort order (recent|popular)")
	cmd.Flags().IntP("number", "n", 0, "Maximum posts (0 = all)")
	return cmd
}

func NewPostCmd(provide appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post <slug>",
		Short: "Show a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}
			category, _ := cmd.Flags().GetString("category")

			p, err := a.Posts.GetBySlug(contextOf(cmd), args[0], category)
			if err != nil {
				return fmt.Errorf("post %s: %w", args[0], err)
			}
			if wantJSON(cmd) {
				return writeJSON(cmd, p)
			}
			printPost(cmd, p)
			return nil
		},
	}

	cmd.Flags().String("category", "", "Require the post to belong to this category")
	return cmd
}

func NewRelatedCmd(provide appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "related <slug>",
		Short: "List posts related to a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("number")

			related, err := a.Posts.Related(contextOf(cmd), args[0], limit)
			if err != nil {
				return fmt.Errorf("related %s: %w", args[0], err)
			}
			if wantJSON(cmd) {
				return writeJSON(cmd, related)
			}
			printSummaries(cmd, related)
			return nil
		},
	}

	cmd.Flags().IntP("number", "n", services.DefaultRelatedLimit, "Maximum posts")
	return cmd
}

func NewFeaturedCmd(provide appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "Show the featured post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}
			p, err := a.Posts.Featured(contextOf(cmd))
			if err != nil {
				return fmt.Errorf("featured: %w", err)
			}
			if wantJSON(cmd) {
				return writeJSON(cmd, p)
			}
			printPost(cmd, p)
			return nil
		},
	}
}

func NewPopularCmd(provide appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List the most viewed posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("number")

			popular, err := a.Posts.Popular(contextOf(cmd), limit)
			if err != nil {
				return fmt.Errorf("popular: %w", err)
			}
			if wantJSON(cmd) {
				return writeJSON(cmd, popular)
			}
			printSummaries(cmd, popular)
			return nil
		},
	}

	cmd.Flags().IntP("number", "n", services.DefaultPopularLimit, "Maximum posts")
	return cmd
}

func NewTagsCmd(provide appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with post counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}
			tags, err := a.Posts.Tags(contextOf(cmd))
			if err != nil {
				return fmt.Errorf("tags: %w", err)
			}
			return printCounts(cmd, tags)
		},
	}
}

func NewCategoriesCmd(provide appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with post counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}
			categories, err := a.Posts.Categories(contextOf(cmd))
			if err != nil {
				return fmt.Errorf("categories: %w", err)
			}
			return printCounts(cmd, categories)
		},
	}
}

func printSummaries(cmd *cobra.Command, posts []dto.PostSummaryDTO) {
	for _, p := range posts {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-40s  %s\n", p.PublishedAt, p.Slug, p.Title)
	}
}

func printPost(cmd *cobra.Command, p *dto.PostDTO) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "%s · %s · %d views\n", p.Category, p.PublishedAt, p.ViewCount)
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", p.Content)
}

func printCounts(cmd *cobra.Command, counts []dto.NameCountDTO) error {
	if wantJSON(cmd) {
		return writeJSON(cmd, counts)
	}
	for _, c := range counts {
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", c.Count, c.Name)
	}
	return nil
}
