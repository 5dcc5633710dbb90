package database

import (
	"context"
	"time"

	"localinfo/internal/core/photo"

	"gorm.io/gorm"
)

type PhotoRepositoryDatabase struct {
	db *gorm.DB
}

func NewPhotoRepositoryDatabase(db *gorm.DB) *PhotoRepositoryDatabase {
	return &PhotoRepositoryDatabase{db: db}
}

func (repo *PhotoRepositoryDatabase) FindAllByPostID(ctx context.Context, postID uint) ([]*photo.Photo, error) {
	var photos []*photo.Photo
	if err := conn(ctx, repo.db).Where("post_id = ?", postID).Order("id").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (repo *PhotoRepositoryDatabase) SoftDeleteByPostID(ctx context.Context, postID uint, at time.Time) error {
	_, err := softDelete(conn(ctx, repo.db), &photo.Photo{}, at, "post_id = ?", postID)
	return err
}

type CommentPhotoRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentPhotoRepositoryDatabase(db *gorm.DB) *CommentPhotoRepositoryDatabase {
	return &CommentPhotoRepositoryDatabase{db: db}
}

func (repo *CommentPhotoRepositoryDatabase) CreateAll(ctx context.Context, photos []*photo.CommentPhoto) error {
	if len(photos) == 0 {
		return nil
	}
	return conn(ctx, repo.db).Create(&photos).Error
}

func (repo *CommentPhotoRepositoryDatabase) FindByID(ctx context.Context, id uint) (*photo.CommentPhoto, bool, error) {
	var p photo.CommentPhoto
	found, err := first(conn(ctx, repo.db), &p, "id = ?", id)
	if !found {
		return nil, false, err
	}
	return &p, true, nil
}

func (repo *CommentPhotoRepositoryDatabase) FindAllByCommentID(ctx context.Context, commentID uint) ([]*photo.CommentPhoto, error) {
	var photos []*photo.CommentPhoto
	if err := conn(ctx, repo.db).Where("comment_id = ?", commentID).Order("id").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (repo *CommentPhotoRepositoryDatabase) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	_, err := softDelete(conn(ctx, repo.db), &photo.CommentPhoto{}, at, "id = ?", id)
	return err
}

func (repo *CommentPhotoRepositoryDatabase) SoftDeleteByCommentIDs(ctx context.Context, commentIDs []uint, at time.Time) error {
	if len(commentIDs) == 0 {
		return nil
	}
	_, err := softDelete(conn(ctx, repo.db), &photo.CommentPhoto{}, at, "comment_id IN ?", commentIDs)
	return err
}
