package services

import (
	"context"
	"testing"

	"github.com/panelops/backend/pkg/constants"
	"github.com/panelops/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectService_DefaultViewForUnknownOrg(t *testing.T) {
	svc := NewDialectService(newFakeDialectRepo())

	config, err := svc.GetConfig(context.Background(), "org-new")
	require.NoError(t, err)
	assert.True(t, config.AutoLearn)
	assert.False(t, config.UseAIFallback)
	for _, c := range constants.AllCategories() {
		assert.Empty(t, config.Aliases[c])
	}
}

func TestDialectService_AddRemoveAliasRoundTrip(t *testing.T) {
	repo := newFakeDialectRepo()
	svc := NewDialectService(repo)
	ctx := context.Background()

	require.NoError(t, svc.AddAlias(ctx, "org-1", constants.CategoryGroove, "nut 4x10", "gl-4-10"))

	canonical, ok, err := svc.Translate(ctx, "org-1", constants.CategoryGroove, "NUT 4X10")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "GL-4-10", canonical)

	require.NoError(t, svc.RemoveAlias(ctx, "org-1", constants.CategoryGroove, "NUT 4X10"))
	_, ok, err = svc.Translate(ctx, "org-1", constants.CategoryGroove, "NUT 4X10")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing again is a no-op
	assert.NoError(t, svc.RemoveAlias(ctx, "org-1", constants.CategoryGroove, "NUT 4X10"))
}

func TestDialectService_AddAliasValidatesInput(t *testing.T) {
	svc := NewDialectService(newFakeDialectRepo())
	ctx := context.Background()

	assert.True(t, errors.IsValidation(svc.AddAlias(ctx, "org-1", "sanding", "A", "B")))
	assert.True(t, errors.IsValidation(svc.AddAlias(ctx, "org-1", constants.CategoryGroove, "  ", "B")))
	assert.True(t, errors.IsValidation(svc.AddAlias(ctx, "org-1", constants.CategoryGroove, "A", "")))
}
