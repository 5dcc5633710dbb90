package categoryapp

import (
	"context"
	"testing"

	"localinfo/internal/adapters/database"
	"localinfo/internal/core/apperr"
	categoryEntity "localinfo/internal/core/category"
	categoryPort "localinfo/internal/ports/category"
	"localinfo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) *CategoryService {
	db := testutil.NewDB(t)
	return NewCategoryService(database.NewCategoryRepositoryDatabase(db), database.NewTransactionManager(db), zap.NewNop())
}

func TestSeedDefaults_OnlyWhenEmpty(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	require.NoError(t, s.SeedDefaults(ctx))
	require.NoError(t, s.SeedDefaults(ctx))

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(categoryEntity.Defaults))
	for i, name := range categoryEntity.Defaults {
		assert.Equal(t, name, all[i].Name)
	}
}

func TestCreate(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	c, err := s.Create(ctx, categoryPort.CreateRequest{Name: " Events "})
	require.NoError(t, err)
	assert.Equal(t, "Events", c.Name)
	assert.NotZero(t, c.ID)

	_, err = s.Create(ctx, categoryPort.CreateRequest{Name: "Events"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = s.Create(ctx, categoryPort.CreateRequest{Name: "  "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
