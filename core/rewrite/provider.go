// ABOUTME: Provider abstraction over LLM completion backends plus the rewrite prompts
// ABOUTME: Providers report rate limiting as an ExternalAPIError with status 429

package rewrite

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	coreerrors "oddly-enough-api/core/errors"
)

// Provider completes a single prompt
type Provider interface {
	// Name identifies the backend in logs
	Name() string

	// Complete returns the model output for prompt
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

const summaryPrompt = `Write a punchy, engaging one-liner summary for this weird news story. Rules:
- Max 120 characters
- No quotes around the text
- No clickbait ("you won't believe", "shocking")
- Be witty but clear
- Start with the interesting part

Title: %s
Context: %s

Summary:`

const contentPrompt = `Rewrite this news article to be clean, well-formatted, and engaging. Rules:
- Fix any broken sentences (missing words at start, orphaned punctuation)
- Remove any metadata cruft (bylines, timestamps, image credits)
- Keep the same facts and information
- Use clear paragraph breaks
- Make it flow naturally
- Keep similar length to original
- Start sentences properly (no orphaned "'s" or ",")
- Do NOT add any commentary or introduction

Article title: %s

Raw content:
%s

Rewritten article:`

func buildSummaryPrompt(title, context string) string {
	return fmt.Sprintf(summaryPrompt, title, context)
}

func buildContentPrompt(title, content string) string {
	if title == "" {
		title = "News Article"
	}
	return fmt.Sprintf(contentPrompt, title, content)
}

// IsRateLimited reports whether err is a provider 429
func IsRateLimited(err error) bool {
	var apiErr *coreerrors.ExternalAPIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests
}
