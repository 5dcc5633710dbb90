package database

import (
	"context"
	"time"

	"localinfo/internal/core/post"

	"gorm.io/gorm"
)

// PostRepositoryDatabase implements PostRepository with gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

// withDetail loads what a PostResponse needs. The author is loaded even when soft-deleted.
func withDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("User", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Preload("Photos", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") })
}

// Create inserts the post with its photos. Category and user rows are referenced, never written.
func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := conn(ctx, repo.db).Omit("Category", "User").Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uint) (*post.Post, bool, error) {
	var p post.Post
	found, err := first(withDetail(conn(ctx, repo.db)), &p, "id = ?", id)
	if !found {
		return nil, false, err
	}
	return &p, true, nil
}

func (repo *PostRepositoryDatabase) FindAllByCategoryID(ctx context.Context, categoryID uint) ([]*post.Post, error) {
	var posts []*post.Post
	if err := withDetail(conn(ctx, repo.db)).
		Where("category_id = ?", categoryID).
		Order("id").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) UpdateContents(ctx context.Context, id uint, contents string) error {
	return conn(ctx, repo.db).Model(&post.Post{}).Where("id = ?", id).Update("contents", contents).Error
}

func (repo *PostRepositoryDatabase) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	_, err := softDelete(conn(ctx, repo.db), &post.Post{}, at, "id = ?", id)
	return err
}
