package post

import (
	"time"

	"localinfo/internal/core/audit"
	"localinfo/internal/core/category"
	"localinfo/internal/core/photo"
	"localinfo/internal/core/user"
)

// Post owns its photos and, through comment.Comment.PostID, its comments.
// The author is referenced by id only; users keep no post collection.
type Post struct {
	ID         uint              `gorm:"primaryKey"`
	Contents   string            `gorm:"type:text;not null"`
	Region     user.Region       `gorm:"embedded"`
	CategoryID uint              `gorm:"not null;index"`
	Category   category.Category `gorm:"foreignKey:CategoryID"`
	UserID     uint              `gorm:"not null;index"`
	User       user.User         `gorm:"foreignKey:UserID"`
	Photos     []photo.Photo     `gorm:"foreignKey:PostID"`
	audit.Base
}

// New snapshots the author's region onto the post.
func New(contents string, c *category.Category, author *user.User, photos []photo.Photo) *Post {
	return &Post{
		Contents:   contents,
		Region:     author.Region,
		CategoryID: c.ID,
		Category:   *c,
		UserID:     author.ID,
		User:       *author,
		Photos:     photos,
	}
}

func (p *Post) UpdateContents(contents string) uint {
	p.Contents = contents
	return p.ID
}

func (p *Post) Delete(at time.Time) uint {
	p.MarkDeleted(at)
	return p.ID
}
