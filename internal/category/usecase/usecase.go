package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.InvalidArgument("category name is required")
	}

	if input.ParentCategoryID != nil {
		parent, err := uc.repo.FindByID(ctx, *input.ParentCategoryID)
		if err != nil {
			uc.logger.Error("failed to load parent category", zap.Int64("parent_id", *input.ParentCategoryID), zap.Error(err))
			return nil, apperror.Internal("failed to load parent category", err)
		}
		if parent == nil {
			return nil, apperror.NotFound("parent category not found")
		}
	}

	cat := &model.Category{
		BaseModel:        model.BaseModel{CreatedAt: time.Now().UTC()},
		Name:             name,
		ParentCategoryID: input.ParentCategoryID,
		Position:         input.Position,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		uc.logger.Error("failed to create category", zap.Error(err))
		return nil, apperror.Internal("failed to create category", err)
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	if id <= 0 {
		return nil, apperror.InvalidArgument("invalid category id")
	}
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Error("failed to load category", zap.Int64("category_id", id), zap.Error(err))
		return nil, apperror.Internal("failed to load category", err)
	}
	if cat == nil {
		return nil, apperror.NotFound("category not found")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	cats, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		uc.logger.Error("failed to list categories", zap.Error(err))
		return nil, apperror.Internal("failed to list categories", err)
	}
	return cats, nil
}

func (uc *categoryUseCase) Tree(ctx context.Context) ([]model.Category, error) {
	cats, err := uc.ListCategories(ctx, &dto.CategoryFilters{})
	if err != nil {
		return nil, err
	}
	return BuildTree(cats), nil
}

// BuildTree links a flat category list into trees. Categories are returned in
// input order within each level. A category whose parent is missing from the
// list, or that sits on a parent cycle, is not reachable from any root and is
// dropped.
func BuildTree(flat []model.Category) []model.Category {
	children := make(map[int64][]int, len(flat))
	var roots []int
	for i := range flat {
		if flat[i].IsRoot() {
			roots = append(roots, i)
			continue
		}
		pid := *flat[i].ParentCategoryID
		children[pid] = append(children[pid], i)
	}

	visited := make(map[int64]bool, len(flat))
	var build func(i int) model.Category
	build = func(i int) model.Category {
		node := flat[i]
		visited[node.ID] = true
		node.Children = nil
		for _, ci := range children[node.ID] {
			if visited[flat[ci].ID] {
				continue
			}
			node.Children = append(node.Children, build(ci))
		}
		return node
	}

	tree := make([]model.Category, 0, len(roots))
	for _, i := range roots {
		tree = append(tree, build(i))
	}
	return tree
}
