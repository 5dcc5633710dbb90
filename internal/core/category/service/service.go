package categoryapp

import (
	"context"
	"strings"

	"localinfo/internal/core/apperr"
	categoryEntity "localinfo/internal/core/category"
	"localinfo/internal/core/converter"
	categoryPort "localinfo/internal/ports/category"
	"localinfo/internal/ports/transaction"

	"go.uber.org/zap"
)

type CategoryService struct {
	CategoryRepository categoryPort.CategoryRepository
	tx                 transaction.Manager
	logger             *zap.Logger
}

func NewCategoryService(repo categoryPort.CategoryRepository, tx transaction.Manager, logger *zap.Logger) *CategoryService {
	return &CategoryService{CategoryRepository: repo, tx: tx, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, req categoryPort.CreateRequest) (*categoryPort.CategoryDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("invalid category", map[string]string{"name": "must not be empty"})
	}

	var created *categoryEntity.Category
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, found, err := s.CategoryRepository.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if found {
			return apperr.Conflict("category %q already exists", name)
		}
		created, err = s.CategoryRepository.Create(ctx, &categoryEntity.Category{Name: name})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created", zap.Uint("category_id", created.ID), zap.String("name", name))
	dto := converter.ToCategoryDTO(created)
	return &dto, nil
}

func (s *CategoryService) FindAll(ctx context.Context) ([]categoryPort.CategoryDTO, error) {
	categories, err := s.CategoryRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]categoryPort.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		res = append(res, converter.ToCategoryDTO(c))
	}
	return res, nil
}

// SeedDefaults inserts categoryEntity.Defaults when the table is empty.
func (s *CategoryService) SeedDefaults(ctx context.Context) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := s.CategoryRepository.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, name := range categoryEntity.Defaults {
			if _, err := s.CategoryRepository.Create(ctx, &categoryEntity.Category{Name: name}); err != nil {
				return err
			}
		}
		s.logger.Info("default categories seeded", zap.Int("count", len(categoryEntity.Defaults)))
		return nil
	})
}
