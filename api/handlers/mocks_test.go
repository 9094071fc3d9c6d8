package handlers

import (
	"context"

	"oddly-enough-api/core/content"
	"oddly-enough-api/core/domain"
	"oddly-enough-api/core/tiers"
)

type mockReader struct {
	readFunc    func(ctx context.Context, opts tiers.ReadOptions) tiers.ReadResult
	currentFunc func(ctx context.Context) (*domain.Batch, bool)
}

func (m *mockReader) Read(ctx context.Context, opts tiers.ReadOptions) tiers.ReadResult {
	if m.readFunc != nil {
		return m.readFunc(ctx, opts)
	}
	return tiers.ReadResult{Source: domain.ProvenanceFallback}
}

func (m *mockReader) Current(ctx context.Context) (*domain.Batch, bool) {
	if m.currentFunc != nil {
		return m.currentFunc(ctx)
	}
	return nil, false
}

type mockContent struct {
	pageFunc    func(ctx context.Context, pageURL string) (*domain.PageContent, error)
	articleFunc func(ctx context.Context, pageURL, title string) (*content.Article, error)
}

func (m *mockContent) Page(ctx context.Context, pageURL string) (*domain.PageContent, error) {
	if m.pageFunc != nil {
		return m.pageFunc(ctx, pageURL)
	}
	return &domain.PageContent{URL: pageURL, Content: domain.ContentUnavailable}, nil
}

func (m *mockContent) Article(ctx context.Context, pageURL, title string) (*content.Article, error) {
	if m.articleFunc != nil {
		return m.articleFunc(ctx, pageURL, title)
	}
	return &content.Article{Content: domain.ContentUnavailable}, nil
}

type mockLookup struct {
	findByIDFunc  func(ctx context.Context, id string) (*domain.Article, error)
	findByURLFunc func(ctx context.Context, url string) (*domain.Article, error)
}

func (m *mockLookup) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockLookup) FindByURL(ctx context.Context, url string) (*domain.Article, error) {
	return m.findByURLFunc(ctx, url)
}

type mockFlusher struct {
	calls     int
	flushFunc func(ctx context.Context) (tiers.FlushResult, error)
}

func (m *mockFlusher) Flush(ctx context.Context) (tiers.FlushResult, error) {
	m.calls++
	if m.flushFunc != nil {
		return m.flushFunc(ctx)
	}
	return tiers.FlushResult{}, nil
}

type mockTracker struct {
	trackFunc func(event domain.TrackEvent) (domain.Engagement, error)
	statsFunc func(ids []string) map[string]domain.Engagement
	allFunc   func() map[string]domain.Engagement
}

func (m *mockTracker) Track(event domain.TrackEvent) (domain.Engagement, error) {
	return m.trackFunc(event)
}

func (m *mockTracker) Stats(ids []string) map[string]domain.Engagement {
	return m.statsFunc(ids)
}

func (m *mockTracker) All() map[string]domain.Engagement {
	return m.allFunc()
}

type recordingLogger struct {
	warns  []string
	errors []string
}

func (l *recordingLogger) Debug(string, map[string]interface{}) {}
func (l *recordingLogger) Info(string, map[string]interface{})  {}
func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.warns = append(l.warns, msg)
}
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) {
	l.errors = append(l.errors, msg)
}
