package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	brandrepo "github.com/fekuna/omnipos-catalog-service/internal/brand/repository"
	brandusecase "github.com/fekuna/omnipos-catalog-service/internal/brand/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/productmodel/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/productmodel/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsByBrand(t *testing.T) {
	db := testutil.NewDB(t)
	log := logger.NewNop()
	ctx := context.Background()

	brands := brandrepo.NewPGRepository(db)
	acme, err := brandusecase.NewBrandUseCase(brands, log).CreateBrand(ctx, "Acme")
	require.NoError(t, err)

	uc := NewModelUseCase(repository.NewPGRepository(db), brands, log)
	x1, err := uc.CreateModel(ctx, &dto.CreateModelInput{Name: "X1", BrandID: &acme.ID})
	require.NoError(t, err)
	_, err = uc.CreateModel(ctx, &dto.CreateModelInput{Name: "Loose"})
	require.NoError(t, err)

	got, err := uc.GetModel(ctx, x1.ID)
	require.NoError(t, err)
	assert.Equal(t, "X1", got.Name)

	models, err := uc.ListByBrand(ctx, acme.ID)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, x1.ID, models[0].ID)
}

func TestModelErrors(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewModelUseCase(repository.NewPGRepository(db), brandrepo.NewPGRepository(db), logger.NewNop())
	ctx := context.Background()
	missing := int64(7)

	_, err := uc.CreateModel(ctx, &dto.CreateModelInput{Name: " "})
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))

	_, err = uc.CreateModel(ctx, &dto.CreateModelInput{Name: "X2", BrandID: &missing})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = uc.GetModel(ctx, missing)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = uc.ListByBrand(ctx, 0)
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}
