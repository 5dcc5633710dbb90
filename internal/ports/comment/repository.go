package comment

import (
	"context"
	"time"

	"localinfo/internal/core/comment"
	"localinfo/internal/ports/storage"
)

// CommentRepository only ever returns live comments.
type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, id uint) (*comment.Comment, bool, error)
	FindAllByPostID(ctx context.Context, postID uint) ([]*comment.Comment, error)
	UpdateContents(ctx context.Context, id uint, contents string) error
	SoftDelete(ctx context.Context, id uint, at time.Time) error
	// SoftDeleteByPostID marks every live comment of the post and returns their ids.
	SoftDeleteByPostID(ctx context.Context, postID uint, at time.Time) ([]uint, error)
}

type SaveRequest struct {
	UserID   uint
	Contents string
	ParentID *uint
	Photos   []storage.File
}

type ChangeRequest struct {
	CommentID      uint
	Contents       string
	CommentPhotoID *uint
	Photos         []storage.File
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"postId"`
	Contents  string    `json:"contents"`
	NickName  string    `json:"nickName"`
	UpdatedAt time.Time `json:"updatedAt"`
	Region    string    `json:"region"`
	ParentID  *uint     `json:"parentId"`
	Depth     int       `json:"depth"`
	URLs      []string  `json:"urls"`
}
