package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/attribute/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/attribute/repository"
	catdto "github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	catrepo "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	catuc "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	log := logger.NewNop()
	ctx := context.Background()

	categories := catrepo.NewPGRepository(db)
	cat, err := catuc.NewCategoryUseCase(categories, log).CreateCategory(ctx, &catdto.CreateCategoryInput{Name: "Phones"})
	require.NoError(t, err)

	uc := NewAttributeUseCase(repository.NewPGRepository(db), categories, log)

	screen, err := uc.CreateAttribute(ctx, &dto.CreateAttributeInput{CategoryID: cat.ID, Name: " Screen size "})
	require.NoError(t, err)
	assert.Equal(t, "Screen size", screen.Name)
	color, err := uc.CreateAttribute(ctx, &dto.CreateAttributeInput{CategoryID: cat.ID, Name: "Color", IsChangeable: true})
	require.NoError(t, err)

	all, err := uc.AttributesForCategory(ctx, cat.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	changeable, err := uc.AttributesForCategory(ctx, cat.ID, true)
	require.NoError(t, err)
	require.Len(t, changeable, 1)
	assert.Equal(t, color.ID, changeable[0].ID)

	ok, err := uc.IsChangeable(ctx, screen.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = uc.IsChangeable(ctx, color.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAttributeCatalog_Errors(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewAttributeUseCase(repository.NewPGRepository(db), catrepo.NewPGRepository(db), logger.NewNop())
	ctx := context.Background()

	_, err := uc.IsChangeable(ctx, 42)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = uc.AttributesForCategory(ctx, 42, false)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = uc.AttributesForCategory(ctx, 0, false)
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))

	_, err = uc.CreateAttribute(ctx, &dto.CreateAttributeInput{CategoryID: 42, Name: ""})
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}
