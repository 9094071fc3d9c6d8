package featureflags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOGImageFetch_DisabledByDefault(t *testing.T) {
	t.Setenv("TEST_FEATURE_OG_IMAGE_FETCH", "")
	manager := NewEnvManager("TEST_FEATURE_")
	ctx := context.Background()

	assert.False(t, manager.IsEnabled(ctx, OGImageFetch))
}

func TestOGImageFetch_EnabledWhenFlagSet(t *testing.T) {
	t.Setenv("TEST_FEATURE_OG_IMAGE_FETCH", "true")

	manager := NewEnvManager("TEST_FEATURE_")
	assert.True(t, manager.IsEnabled(context.Background(), OGImageFetch))
}

func TestEnvManager_DefaultsApplyWhenUnset(t *testing.T) {
	manager := NewEnvManager("UNSET_PREFIX_")
	ctx := context.Background()

	assert.True(t, manager.IsEnabled(ctx, RateLimitEnabled))
	assert.True(t, manager.IsEnabled(ctx, LLMSummaries))
	assert.False(t, manager.IsEnabled(ctx, Placeholders))
}

func TestEnvManager_ExplicitFalseBeatsDefault(t *testing.T) {
	t.Setenv("TEST_FEATURE_RATE_LIMIT_ENABLED", "false")

	manager := NewEnvManager("TEST_FEATURE_")
	assert.False(t, manager.IsEnabled(context.Background(), RateLimitEnabled))
}

func TestEnvManager_MultipleValues(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"true lowercase", "true", true},
		{"TRUE uppercase", "TRUE", true},
		{"1 numeric", "1", true},
		{"enabled", "enabled", true},
		{"ENABLED", "ENABLED", true},
		{"yes", "yes", true},
		{"on", "on", true},
		{"false", "false", false},
		{"0", "0", false},
		{"empty", "", false},
		{"other", "maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_FLAG", tt.value)

			manager := NewEnvManager("TEST_")
			assert.Equal(t, tt.expected, manager.IsEnabled(context.Background(), "FLAG"))
		})
	}
}

func TestEnvManager_SetEnabled(t *testing.T) {
	manager := NewEnvManager("TEST_")
	ctx := context.Background()

	assert.False(t, manager.IsEnabled(ctx, Placeholders))

	manager.SetEnabled(Placeholders, true)
	assert.True(t, manager.IsEnabled(ctx, Placeholders))

	manager.SetEnabled(Placeholders, false)
	assert.False(t, manager.IsEnabled(ctx, Placeholders))
}

func TestEnvManager_OverrideTakesPrecedence(t *testing.T) {
	t.Setenv("TEST_FEATURE_SHUFFLE_BATCH", "true")

	manager := NewEnvManager("TEST_FEATURE_")
	manager.SetEnabled(ShuffleBatch, false)

	assert.False(t, manager.IsEnabled(context.Background(), ShuffleBatch))
}

func TestEnvManager_GetAllFlags(t *testing.T) {
	manager := NewEnvManager("UNSET_PREFIX_")
	manager.SetEnabled(OGImageFetch, true)

	flags := manager.GetAllFlags()
	assert.Len(t, flags, len(AllFlags))
	assert.True(t, flags[OGImageFetch])
	assert.Equal(t, Defaults[ShuffleBatch], flags[ShuffleBatch])
}

func TestStaticManager(t *testing.T) {
	manager := NewStaticManager(map[FeatureFlag]bool{
		LLMSummaries: true,
	})
	ctx := context.Background()

	assert.True(t, manager.IsEnabled(ctx, LLMSummaries))
	assert.False(t, manager.IsEnabled(ctx, OGImageFetch))

	manager.SetEnabled(OGImageFetch, true)
	assert.True(t, manager.IsEnabled(ctx, OGImageFetch))

	all := manager.GetAllFlags()
	all[LLMSummaries] = false
	assert.True(t, manager.IsEnabled(ctx, LLMSummaries), "GetAllFlags returns a copy")
}

func TestContextManager(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsEnabled(ctx, LLMSummaries), "no manager disables everything")

	ctx = WithManager(ctx, NewStaticManager(map[FeatureFlag]bool{LLMSummaries: true}))
	assert.True(t, IsEnabled(ctx, LLMSummaries))
}
