// ABOUTME: extract prints the readable paragraphs of a page
// ABOUTME: Uses the same content service as /api/content

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <url>",
		Short: "Extract readable text from a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, done, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer done()

			page, err := a.Content.Page(ctx, args[0])
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), page)
			}
			fmt.Fprintln(cmd.OutOrStdout(), page.Content)
			return nil
		},
	}
}
