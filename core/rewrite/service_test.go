package rewrite

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "oddly-enough-api/core/errors"
	"oddly-enough-api/core/interfaces"
)

var longContent = strings.Repeat("The goose refused to leave the bank lobby for most of the afternoon. ", 5)

func fastOptions() Options {
	return Options{Timeout: time.Second, RatePerSec: 1000, Backoff: time.Millisecond}
}

func TestService_Summary_Success(t *testing.T) {
	var gotPrompt string
	provider := &mockProvider{completeFunc: func(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
		gotPrompt = prompt
		assert.Equal(t, 80, maxTokens)
		return `"Goose takes over bank lobby, refuses to leave"`, nil
	}}

	svc := NewService(provider, nil, fastOptions())
	got := svc.Summary(context.Background(), "Goose in bank", "A goose walked into a bank and would not leave for hours.")

	assert.Equal(t, "Goose takes over bank lobby, refuses to leave", got)
	assert.Contains(t, gotPrompt, "Title: Goose in bank")
	assert.Contains(t, gotPrompt, "Context: A goose walked into a bank")
}

func TestService_Summary_GenericUsesTitle(t *testing.T) {
	var gotPrompt string
	provider := &mockProvider{completeFunc: func(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
		gotPrompt = prompt
		return "A perfectly reasonable one-liner", nil
	}}

	svc := NewService(provider, nil, fastOptions())
	svc.Summary(context.Background(), "Goose in bank", "A real headline that sounds like satire. Tap to read more...")
	assert.Contains(t, gotPrompt, "Context: Goose in bank")
}

func TestService_Summary_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
	}{
		{"provider error", "", errors.New("boom")},
		{"too short", "Goose.", nil},
		{"too long", strings.Repeat("goose ", 40), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{completeFunc: func(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
				return tt.output, tt.err
			}}
			svc := NewService(provider, nil, fastOptions())
			assert.Equal(t, "original summary text", svc.Summary(context.Background(), "t", "original summary text"))
		})
	}
}

func TestService_Summary_NoProvider(t *testing.T) {
	svc := NewService(nil, nil, Options{})
	assert.False(t, svc.Enabled())
	assert.Equal(t, "keep me", svc.Summary(context.Background(), "title", "keep me"))
	assert.Equal(t, "title", svc.Summary(context.Background(), "title", ""))
}

func TestService_Summary_Timeout(t *testing.T) {
	provider := &mockProvider{completeFunc: func(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	opts := fastOptions()
	opts.Timeout = 20 * time.Millisecond
	svc := NewService(provider, nil, opts)

	start := time.Now()
	assert.Equal(t, "orig", svc.Summary(context.Background(), "t", "orig"))
	assert.Less(t, time.Since(start), time.Second)
}

func TestService_RetriesOnRateLimit(t *testing.T) {
	provider := &mockProvider{}
	provider.completeFunc = func(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
		if provider.callCount() < 3 {
			return "", &coreerrors.ExternalAPIError{StatusCode: 429, API: "mock"}
		}
		return "Third time lucky for this goose", nil
	}

	svc := NewService(provider, nil, fastOptions())
	assert.Equal(t, "Third time lucky for this goose", svc.Summary(context.Background(), "t", "orig summary here"))
	assert.Equal(t, 3, provider.callCount())
}

func TestService_NoRetryOnOtherErrors(t *testing.T) {
	provider := &mockProvider{completeFunc: func(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
		return "", &coreerrors.ExternalAPIError{StatusCode: 500, API: "mock"}
	}}

	svc := NewService(provider, nil, fastOptions())
	svc.Summary(context.Background(), "t", "orig summary here")
	assert.Equal(t, 1, provider.callCount())
}

func TestService_ConcurrencyCap(t *testing.T) {
	var inFlight, maxInFlight int32
	provider := &mockProvider{completeFunc: func(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return "A summary of reasonable length", nil
	}}

	opts := fastOptions()
	opts.Concurrency = 2
	svc := NewService(provider, nil, opts)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Summary(context.Background(), "t", "some original summary")
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(2))
	assert.Equal(t, 8, provider.callCount())
}

func TestService_Content(t *testing.T) {
	var gotPrompt string
	rewritten := strings.Repeat("A cleaner version of the goose story. ", 5)
	provider := &mockProvider{completeFunc: func(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
		gotPrompt = prompt
		assert.Equal(t, 1500, maxTokens)
		return rewritten, nil
	}}
	svc := NewService(provider, nil, fastOptions())

	assert.Equal(t, rewritten, svc.Content(context.Background(), "Goose", longContent))
	assert.Contains(t, gotPrompt, "Article title: Goose")

	assert.Equal(t, "short", svc.Content(context.Background(), "Goose", "short"), "short input is not sent")
	assert.Equal(t, 1, provider.callCount())
}

func TestService_Content_InputCapped(t *testing.T) {
	var gotPrompt string
	provider := &mockProvider{completeFunc: func(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
		gotPrompt = prompt
		return "tiny", nil
	}}
	svc := NewService(provider, nil, fastOptions())

	huge := strings.Repeat("x", 5000)
	assert.Equal(t, huge, svc.Content(context.Background(), "", huge), "short output falls back")
	assert.Contains(t, gotPrompt, "Article title: News Article")
	assert.NotContains(t, gotPrompt, strings.Repeat("x", 3001))
}

func TestChatProvider_Complete(t *testing.T) {
	client := &mockHTTPClient{postFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
		assert.Equal(t, DefaultChatURL, url)
		return &mockResponse{statusCode: 200, body: `{"choices":[{"message":{"role":"assistant","content":"  Goose wins  "}}]}`}, nil
	}}

	p, err := NewChatProvider(client, "", "secret", "")
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "prompt", 80, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "Goose wins", out)
	assert.Equal(t, "Bearer secret", client.headers["Authorization"])
	assert.Contains(t, client.lastBody, `"model":"llama-3.1-8b-instant"`)
	assert.Contains(t, client.lastBody, `"max_tokens":80`)
}

func TestChatProvider_RateLimited(t *testing.T) {
	client := &mockHTTPClient{postFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 429, body: "slow down"}, nil
	}}
	p, err := NewChatProvider(client, "https://llm.example.com/v1/chat/completions", "secret", "m")
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "prompt", 80, 0.7)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.True(t, coreerrors.IsExternalAPI(err))
}

func TestNewChatProvider_Validation(t *testing.T) {
	_, err := NewChatProvider(nil, "", "key", "")
	assert.Error(t, err)
	_, err = NewChatProvider(&mockHTTPClient{}, "", "", "")
	assert.Error(t, err)
}
