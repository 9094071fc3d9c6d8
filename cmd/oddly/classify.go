// ABOUTME: classify shows how the heuristics judge a headline
// ABOUTME: Runs offline; no configuration or network is needed

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"oddly-enough-api/core/classify"
	"oddly-enough-api/core/domain"
)

func newClassifyCmd() *cobra.Command {
	var (
		summary  string
		fallback string
	)

	cmd := &cobra.Command{
		Use:   "classify <title>",
		Short: "Explain the classifier verdict for a headline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			verdict := classify.Default().Explain(title, summary, domain.Category(fallback))
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), verdict)
			}
			printVerdict(cmd.OutOrStdout(), verdict)
			return nil
		},
	}

	cmd.Flags().StringVarP(&summary, "summary", "s", "", "article summary to classify alongside the title")
	cmd.Flags().StringVar(&fallback, "fallback", string(domain.CategoryViral), "category used when no rule matches")
	return cmd
}

func printVerdict(w io.Writer, v classify.Verdict) {
	fmt.Fprintf(w, "category: %s\n", v.Category)
	fmt.Fprintf(w, "odd:      %t\n", v.Odd)
	fmt.Fprintf(w, "boring:   %t\n", v.Boring)
	fmt.Fprintf(w, "english:  %t\n", v.English)
	fmt.Fprintf(w, "fail:     %t\n", v.Fail)
	fmt.Fprintf(w, "mystery:  %t\n", v.Mystery)
	fmt.Fprintf(w, "british:  %t\n", v.British)
	if v.OddRule != "" {
		fmt.Fprintf(w, "odd rule: %s\n", v.OddRule)
	}
	if v.BoringRule != "" {
		fmt.Fprintf(w, "boring rule: %s\n", v.BoringRule)
	}
}
