package database

import (
	"context"

	"localinfo/internal/core/category"

	"gorm.io/gorm"
)

type CategoryRepositoryDatabase struct {
	db *gorm.DB
}

func NewCategoryRepositoryDatabase(db *gorm.DB) *CategoryRepositoryDatabase {
	return &CategoryRepositoryDatabase{db: db}
}

func (repo *CategoryRepositoryDatabase) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	if err := conn(ctx, repo.db).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CategoryRepositoryDatabase) FindByID(ctx context.Context, id uint) (*category.Category, bool, error) {
	var c category.Category
	found, err := first(conn(ctx, repo.db), &c, "id = ?", id)
	if !found {
		return nil, false, err
	}
	return &c, true, nil
}

func (repo *CategoryRepositoryDatabase) FindByName(ctx context.Context, name string) (*category.Category, bool, error) {
	var c category.Category
	found, err := first(conn(ctx, repo.db), &c, "name = ?", name)
	if !found {
		return nil, false, err
	}
	return &c, true, nil
}

func (repo *CategoryRepositoryDatabase) FindAll(ctx context.Context) ([]*category.Category, error) {
	var categories []*category.Category
	if err := conn(ctx, repo.db).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (repo *CategoryRepositoryDatabase) Count(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, repo.db).Model(&category.Category{}).Count(&n).Error
	return n, err
}
