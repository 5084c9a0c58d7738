package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tech-blog/loader"
)

func NewWatchCmd(provide appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the corpus when content files change",
		Long:  `Watch the content root and rebuild the post index after each batch of changes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}
			debounce, _ := cmd.Flags().GetDuration("debounce")

			if a.Watcher() == nil {
				return errors.New("watch needs a local content root (content.base_url is set)")
			}
			ctx := contextOf(cmd)
			idx, err := a.Repo.Index(ctx)
			if err != nil {
				return fmt.Errorf("initial load: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (%d posts)...\n", a.Config.Content.Root, idx.Len())

			w := loader.NewWatcher(a.Config.Content.Root, a.Config.Content.Extension, debounce, func(ctx context.Context) {
				next, err := a.Repo.Reload(ctx)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] reloaded %d posts\n", time.Now().Format(time.TimeOnly), next.Len())
			})
			return w.Run(ctx)
		},
	}

	cmd.Flags().Duration("debounce", loader.DefaultDebounce, "Debounce window for batching changes")
	return cmd
}
