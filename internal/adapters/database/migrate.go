package database

import (
	"localinfo/internal/core/category"
	"localinfo/internal/core/comment"
	"localinfo/internal/core/photo"
	"localinfo/internal/core/post"
	"localinfo/internal/core/user"

	"gorm.io/gorm"
)

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&user.User{},
		&category.Category{},
		&post.Post{},
		&photo.Photo{},
		&comment.Comment{},
		&photo.CommentPhoto{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
