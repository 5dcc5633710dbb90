package comment

import (
	"localinfo/internal/core/audit"
	"localinfo/internal/core/photo"
	"localinfo/internal/core/user"
)

// Depth is derived from the parent reference and never stored.
type Depth int

const (
	DepthZero Depth = 0
	DepthOne  Depth = 1
)

func DepthOf(parentID *uint) Depth {
	if parentID == nil {
		return DepthZero
	}
	return DepthOne
}

type Comment struct {
	ID       uint                 `gorm:"primaryKey"`
	Contents string               `gorm:"type:text;not null"`
	PostID   uint                 `gorm:"not null;index"`
	UserID   uint                 `gorm:"not null;index"`
	User     user.User            `gorm:"foreignKey:UserID"`
	ParentID *uint                `gorm:"index"`
	Photos   []photo.CommentPhoto `gorm:"foreignKey:CommentID"`
	audit.Base
}

func (c *Comment) Depth() Depth { return DepthOf(c.ParentID) }

func (c *Comment) ChangeContents(contents string) {
	c.Contents = contents
}
