// ABOUTME: flush clears the article batch and cached page content
// ABOUTME: Equivalent to the secret-gated /api/flush-cache endpoint

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFlushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Clear the distributed article batch and every cached page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, done, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer done()

			result, err := a.Controller.Flush(ctx)
			if err != nil {
				return fmt.Errorf("flush failed: %w", err)
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "article cache cleared: %t\ncontent keys cleared: %d\n", result.BatchCleared, result.ContentKeys)
			return nil
		},
	}
}
