package photo

import (
	"context"
	"time"

	"localinfo/internal/core/photo"
)

// PhotoRepository covers post photos. They are inserted together with their post.
type PhotoRepository interface {
	FindAllByPostID(ctx context.Context, postID uint) ([]*photo.Photo, error)
	SoftDeleteByPostID(ctx context.Context, postID uint, at time.Time) error
}

type CommentPhotoRepository interface {
	CreateAll(ctx context.Context, photos []*photo.CommentPhoto) error
	FindByID(ctx context.Context, id uint) (*photo.CommentPhoto, bool, error)
	FindAllByCommentID(ctx context.Context, commentID uint) ([]*photo.CommentPhoto, error)
	SoftDelete(ctx context.Context, id uint, at time.Time) error
	SoftDeleteByCommentIDs(ctx context.Context, commentIDs []uint, at time.Time) error
}
