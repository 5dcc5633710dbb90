// Package converter maps request DTOs to entities and entities to response DTOs.
package converter

import (
	"localinfo/internal/core/category"
	"localinfo/internal/core/comment"
	"localinfo/internal/core/photo"
	"localinfo/internal/core/post"
	"localinfo/internal/core/user"
	categoryPort "localinfo/internal/ports/category"
	commentPort "localinfo/internal/ports/comment"
	postPort "localinfo/internal/ports/post"
	userPort "localinfo/internal/ports/user"
)

func ToRegionDTO(r user.Region) userPort.RegionDTO {
	return userPort.RegionDTO{
		Neighborhood: r.Neighborhood,
		District:     r.District,
		City:         r.City,
	}
}

func ToRegion(req userPort.RegisterRequest) user.Region {
	return user.Region{
		Neighborhood: req.Neighborhood,
		District:     req.District,
		City:         req.City,
	}
}

func ToUserResponse(u *user.User) *userPort.UserResponse {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}
	return &userPort.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Nickname:  u.Nickname,
		Email:     u.Email,
		Roles:     roles,
		Region:    ToRegionDTO(u.Region),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToCategoryDTO(c *category.Category) categoryPort.CategoryDTO {
	return categoryPort.CategoryDTO{ID: c.ID, Name: c.Name}
}

// ToPhotos builds one photo per uploaded URL, keeping upload order.
func ToPhotos(urls []string) []photo.Photo {
	photos := make([]photo.Photo, 0, len(urls))
	for _, u := range urls {
		photos = append(photos, photo.Photo{URL: u})
	}
	return photos
}

func ToCommentPhotos(commentID uint, urls []string) []*photo.CommentPhoto {
	photos := make([]*photo.CommentPhoto, 0, len(urls))
	for _, u := range urls {
		photos = append(photos, &photo.CommentPhoto{URL: u, CommentID: commentID})
	}
	return photos
}

func ToPostResponse(p *post.Post) *postPort.PostResponse {
	return &postPort.PostResponse{
		ID:             p.ID,
		Contents:       p.Contents,
		Region:         ToRegionDTO(p.Region),
		Category:       ToCategoryDTO(&p.Category),
		AuthorNickname: p.User.Nickname,
		PhotoURLs:      photo.URLs(p.Photos),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToComment(req commentPort.SaveRequest, postID uint) *comment.Comment {
	return &comment.Comment{
		Contents: req.Contents,
		PostID:   postID,
		UserID:   req.UserID,
		ParentID: req.ParentID,
	}
}

// ToCommentResponse expects c.User to be loaded.
func ToCommentResponse(c *comment.Comment, urls []string) *commentPort.CommentResponse {
	if urls == nil {
		urls = []string{}
	}
	return &commentPort.CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Contents:  c.Contents,
		NickName:  c.User.Nickname,
		UpdatedAt: c.UpdatedAt,
		Region:    c.User.Region.Neighborhood,
		ParentID:  c.ParentID,
		Depth:     int(c.Depth()),
		URLs:      urls,
	}
}
