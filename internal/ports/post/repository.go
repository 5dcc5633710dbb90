package post

import (
	"context"
	"time"

	"localinfo/internal/core/post"
	categoryPort "localinfo/internal/ports/category"
	"localinfo/internal/ports/storage"
	userPort "localinfo/internal/ports/user"
)

// PostRepository only ever returns live posts; soft-deleted rows behave as absent.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id uint) (*post.Post, bool, error)
	FindAllByCategoryID(ctx context.Context, categoryID uint) ([]*post.Post, error)
	UpdateContents(ctx context.Context, id uint, contents string) error
	SoftDelete(ctx context.Context, id uint, at time.Time) error
}

type CreateRequest struct {
	UserID     uint
	CategoryID uint
	Contents   string
	Photos     []storage.File
}

type UpdateRequest struct {
	Contents string `json:"contents" binding:"required"`
}

type PostResponse struct {
	ID             uint                     `json:"id"`
	Contents       string                   `json:"contents"`
	Region         userPort.RegionDTO       `json:"region"`
	Category       categoryPort.CategoryDTO `json:"category"`
	AuthorNickname string                   `json:"authorNickname"`
	PhotoURLs      []string                 `json:"photoUrls"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}
