package category

import (
	"context"

	"localinfo/internal/core/category"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *category.Category) (*category.Category, error)
	FindByID(ctx context.Context, id uint) (*category.Category, bool, error)
	FindByName(ctx context.Context, name string) (*category.Category, bool, error)
	FindAll(ctx context.Context) ([]*category.Category, error)
	Count(ctx context.Context) (int64, error)
}

type CreateRequest struct {
	Name string `json:"name" binding:"required"`
}

type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
