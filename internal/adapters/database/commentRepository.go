package database

import (
	"context"
	"time"

	"localinfo/internal/core/comment"

	"gorm.io/gorm"
)

type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func withAuthorAndPhotos(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Preload("Photos", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") })
}

// Create inserts the comment alone; its photos are written through CommentPhotoRepository.
func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := conn(ctx, repo.db).Omit("User", "Photos").Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id uint) (*comment.Comment, bool, error) {
	var c comment.Comment
	found, err := first(withAuthorAndPhotos(conn(ctx, repo.db)), &c, "id = ?", id)
	if !found {
		return nil, false, err
	}
	return &c, true, nil
}

func (repo *CommentRepositoryDatabase) FindAllByPostID(ctx context.Context, postID uint) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := withAuthorAndPhotos(conn(ctx, repo.db)).
		Where("post_id = ?", postID).
		Order("id").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) UpdateContents(ctx context.Context, id uint, contents string) error {
	return conn(ctx, repo.db).Model(&comment.Comment{}).Where("id = ?", id).Update("contents", contents).Error
}

func (repo *CommentRepositoryDatabase) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	_, err := softDelete(conn(ctx, repo.db), &comment.Comment{}, at, "id = ?", id)
	return err
}

func (repo *CommentRepositoryDatabase) SoftDeleteByPostID(ctx context.Context, postID uint, at time.Time) ([]uint, error) {
	db := conn(ctx, repo.db)
	var ids []uint
	if err := db.Model(&comment.Comment{}).Where("post_id = ?", postID).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if _, err := softDelete(db, &comment.Comment{}, at, "id IN ?", ids); err != nil {
		return nil, err
	}
	return ids, nil
}
