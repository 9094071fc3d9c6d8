// ABOUTME: fetch runs one ingestion and prints the resulting batch
// ABOUTME: Optionally writes the batch through the cache tiers

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"oddly-enough-api/core/domain"
)

func newFetchCmd() *cobra.Command {
	var (
		category string
		store    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run one ingestion and print the articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, done, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer done()

			var batch *domain.Batch
			if store {
				batch, err = a.Controller.Refresh(ctx)
			} else {
				batch, err = a.Origin.Ingest(ctx)
			}
			if err != nil {
				return fmt.Errorf("ingestion failed: %w", err)
			}

			list := batch.Filter(domain.Category(category))
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), list)
			}
			printArticles(cmd.OutOrStdout(), list)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only print this category")
	cmd.Flags().BoolVar(&store, "store", false, "write the batch through the cache tiers")
	return cmd
}

func printArticles(w io.Writer, list []domain.Article) {
	for i, a := range list {
		fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, a.Category, a.Title)
		fmt.Fprintf(w, "    %s | %s\n", a.Source, a.URL)
		if a.Summary != "" {
			fmt.Fprintf(w, "    %s\n", a.Summary)
		}
	}
	fmt.Fprintf(w, "%d articles\n", len(list))
}
